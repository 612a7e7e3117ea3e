// Package config provides configuration parsing for routerctl.
//
// The configuration is stored in routerctl.json. Values can be overridden
// by ROUTERCTL_* environment variables, which may also come from a .env
// file next to the configuration.
//
// # Configuration File Structure
//
//	{
//	  "snapshot": "router-state.yaml",
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "vango",
//	    "subsystem": "router_service"
//	  },
//	  "tracing": {
//	    "tracerName": "vango/routerservice"
//	  },
//	  "inspector": {
//	    "host": "localhost",
//	    "port": 7070,
//	    "watch": false
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.LoadEnv(".env"); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Inspector:", cfg.InspectorAddress())
package config
