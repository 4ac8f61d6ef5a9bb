package config

import (
	"testing"

	"github.com/nrkcat/nrkcat/filesystem"
	"github.com/nrkcat/nrkcat/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		So(Setup(), ShouldBeNil)

		Convey("Every registered field has a default", func() {
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Catalogue defaults point at the public site", func() {
			So(viper.GetString(key.CatalogueOrigin), ShouldEqual, "https://tv.nrk.no")
			So(viper.GetInt(key.CatalogueMaxPages), ShouldBeGreaterThan, 0)
			So(viper.GetBool(key.CacheEnabled), ShouldBeTrue)
		})

		Convey("Environment variables override defaults", func() {
			t.Setenv("NRKCAT_NETWORK_RETRIES", "7")
			So(viper.GetInt(key.NetworkRetries), ShouldEqual, 7)
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a field", t, func() {
		f := Default[key.CacheEnabled]

		Convey("Env derives the prefixed variable name", func() {
			So(f.Env(), ShouldEqual, "NRKCAT_CACHE_ENABLED")
		})

		Convey("EnvKeyReplacer converts dots to underscores", func() {
			So(EnvKeyReplacer.Replace("network.tls_fingerprint"), ShouldEqual, "network_tls_fingerprint")
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Parse converts to the default's type", t, func() {
		v, err := Parse(key.NetworkRetries, "4")
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 4)

		v, err = Parse(key.CacheEnabled, "false")
		So(err, ShouldBeNil)
		So(v, ShouldEqual, false)

		v, err = Parse(key.LogsLevel, "debug")
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "debug")

		Convey("Malformed values are rejected", func() {
			_, err := Parse(key.NetworkTimeout, "soon")
			So(err, ShouldNotBeNil)

			_, err = Parse(key.LogsJson, "maybe")
			So(err, ShouldNotBeNil)
		})

		Convey("Unknown keys are rejected", func() {
			_, err := Parse("cache.size", "1")
			So(err, ShouldNotBeNil)
		})
	})
}
