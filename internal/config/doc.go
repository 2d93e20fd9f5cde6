// Package config loads generator settings with Viper.
//
// Settings come from, in increasing priority: built-in defaults, a
// .codecgen.yaml file (searched in the working directory, or given
// explicitly), and CODECGEN_* environment variables.
package config
