// Package config loads typed configuration structs from environment
// variables. Each struct type is parsed once and cached; a .env file in the
// working directory is read on first use.
//
// Parsing is done by caarlos0/env, so fields are described with env and
// envDefault tags:
//
//	import "github.com/dmitrymomot/reactive/core/config"
//
//	var logCfg logger.Config        // RX_LOG_LEVEL, RX_LOG_FORMAT
//	var loopCfg scheduler.Config    // RX_SCHEDULER_SHUTDOWN_TIMEOUT
//
//	config.MustLoad(&logCfg)
//	if err := config.Load(&loopCfg); err != nil {
//		log.Fatal(err)
//	}
//
//	rx.SetLogger(logger.NewFromConfig(logCfg))
//	loop := scheduler.NewEventLoopFromConfig(loopCfg)
//
// # Caching
//
// A second Load for the same type returns the cached value without reading
// the environment again. Different types are cached independently. Reset
// clears the cache between tests.
package config
