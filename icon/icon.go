// Package icon renders feedback symbols in the variant chosen by icons.variant.
package icon

import (
	"github.com/nrkcat/nrkcat/key"
	"github.com/spf13/viper"
)

const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants returns the supported icons.variant values.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Series
	Episode
	Season
	Category
)

type iconDef struct {
	emoji string
	nerd  string
	plain string
}

func (d iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

var icons = map[Icon]iconDef{
	Success:  {emoji: "🎉", nerd: "", plain: "✓"},
	Fail:     {emoji: "💀", nerd: "", plain: "✗"},
	Progress: {emoji: "⏳", nerd: "", plain: "…"},
	Series:   {emoji: "📺", nerd: "", plain: "S"},
	Episode:  {emoji: "🎬", nerd: "", plain: "E"},
	Season:   {emoji: "📂", nerd: "", plain: "#"},
	Category: {emoji: "🗂", nerd: "", plain: "*"},
}

// Get returns the symbol for i in the configured variant, or "" for an unknown variant.
func Get(i Icon) string {
	return icons[i].get()
}
