// Package bootstrap runs a service through its lifecycle.
//
// NewApp validates the typed configuration and initializes the logger.
// Components registered on the App start in order; configure callbacks then
// build the business layer on top of them. Run blocks until SIGINT/SIGTERM
// and stops components in reverse order within a graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.RegisterComponent(dbComponent)
//	app.RegisterComponent(serverComponent)
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package bootstrap
