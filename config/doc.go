// Package config loads logmerge settings from a YAML file, an optional .env
// file and LOGMERGE_* environment variables.
//
// # Usage
//
//	var cfg config.Config
//	if err := config.LoadConfig("logmerge", &cfg); err != nil {
//		return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//
// Environment variables override file values using the LOGMERGE_ prefix with
// underscore-separated paths (e.g., LOGMERGE_MERGE_FILTER=even). List values
// are comma separated: LOGMERGE_MERGE_INPUTS=a.log,b.log.
package config
