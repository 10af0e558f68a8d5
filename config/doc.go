// Package config loads and validates restkit client configuration.
//
// LoadConfig reads a YAML file, then a .env file, then the process
// environment, each layer overriding the previous one, and unmarshals the
// result with Viper. Every mapstructure key of the target struct is bound to
// an environment variable named after its path, e.g. http.base_url becomes
// HTTP_BASE_URL (or RESTKIT_HTTP_BASE_URL with WithEnvPrefix("RESTKIT")).
//
//	cfg, err := config.Load("widgets-client")
//	if err != nil {
//	    return err
//	}
//	c, err := client.New(*cfg)
package config
