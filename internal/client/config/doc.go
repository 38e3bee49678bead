// Package config loads runtime configuration for the fileshare CLI.
//
// Sources, later ones winning: built-in defaults, an optional JSON file given
// with -c/-config, then the -a (server URL) and -t (timeout seconds) flags.
//
//	{
//	  "server_url": "https://files.example.com",
//	  "request_timeout": "2m"
//	}
package config
