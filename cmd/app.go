package cmd

import (
	"sync"
	"time"

	"github.com/nrkcat/nrkcat/catalogue"
	"github.com/nrkcat/nrkcat/internal/cache"
	"github.com/nrkcat/nrkcat/key"
	"github.com/nrkcat/nrkcat/log"
	"github.com/nrkcat/nrkcat/network"
	"github.com/nrkcat/nrkcat/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	appMu        sync.Mutex
	appCache     *cache.Cache
	appCatalogue *catalogue.Catalogue
)

// openCache returns the process-wide cache, creating it on first use.
func openCache(cmd *cobra.Command) *cache.Cache {
	appMu.Lock()
	defer appMu.Unlock()

	if appCache != nil {
		return appCache
	}

	var opts []cache.Option
	if !viper.GetBool(key.CacheEnabled) || lo.Must(cmd.Flags().GetBool("no-cache")) {
		log.Info("cache disabled for this run")
		opts = append(opts, cache.Disabled())
	}

	appCache = cache.New(cache.NewGacheStore(where.CacheFile()), opts...)
	return appCache
}

// openCatalogue wires the configured network client and the cache into a catalogue.
func openCatalogue(cmd *cobra.Command) *catalogue.Catalogue {
	store := openCache(cmd)

	appMu.Lock()
	defer appMu.Unlock()

	if appCatalogue != nil {
		return appCatalogue
	}

	clientOpts := []network.Option{
		network.WithTimeout(time.Duration(viper.GetInt(key.NetworkTimeout)) * time.Second),
		network.WithRetries(uint(max(viper.GetInt(key.NetworkRetries), 0))),
	}
	if viper.GetBool(key.NetworkTLSFingerprint) {
		clientOpts = append(clientOpts, network.WithTransport(network.NewFingerprintTransport()))
	}

	appCatalogue = catalogue.New(
		network.NewClient(clientOpts...),
		store,
		catalogue.WithOrigin(viper.GetString(key.CatalogueOrigin)),
		catalogue.WithAPIOrigin(viper.GetString(key.CatalogueAPIOrigin)),
		catalogue.WithMaxPages(viper.GetInt(key.CatalogueMaxPages)),
	)
	return appCatalogue
}

// shutdown persists the cache if this run opened it.
func shutdown() error {
	appMu.Lock()
	defer appMu.Unlock()

	if appCache == nil {
		return nil
	}
	return appCache.Close()
}
