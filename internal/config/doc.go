// Package config loads rstore configuration.
//
// The configuration lives in rstore.json or rstore.yaml at the project
// root. When both exist, rstore.json wins.
//
// # Configuration File Structure
//
//	{
//	  "resources": {
//	    "country": "http://country.local/api/Country",
//	    "product": "http://localhost:5000/product"
//	  },
//	  "serve": {
//	    "host": "localhost",
//	    "port": 8080
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics"
//	  },
//	  "live": {
//	    "path": "/live"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Country API:", cfg.Resources["country"])
package config
