// Package config loads runtime configuration for the StoryShare CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed STORYSHARE_, optionally read from a
//     .env file in the working directory first.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the story API
//	-d string   path of the local SQLite database
//	-i int      online status check interval (seconds)
//	-t int      per-request timeout (seconds)
//	-r int      attempts before a rejected queued story is moved aside (0 = never)
//	-n string   listen address of the local notification hub
//	-s string   websocket URL of a peer notification hub to listen to
//	-l string   log level (debug, info, warn, error)
//	-f string   log format (text, json, zap)
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds. Only keys present in the file override earlier values:
//
//	{
//	  "server_base_url": "https://story-api.dicoding.dev/v1",
//	  "database_path": "stories.db",
//	  "online_check_interval": "3s",
//	  "request_timeout": "15s",
//	  "max_sync_attempts": 5,
//	  "notify_addr": ":8090",
//	  "notify_subscribe_url": "ws://peer:8090/ws",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
