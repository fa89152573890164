// Package config holds the settings for staging an install manifest.
//
//	            +-------------+
//	            |   Config    |
//	            | (Settings)  |
//	            +------+------+
//	                   |
//	   +--------+------+-----+--------+
//	   |        |            |        |
//	+--+---+ +--+--+     +---+--+ +---+--+
//	| YAML | | HCL |     | JSON | | TOML |
//	+------+ +-----+     +------+ +------+
//
// 🎯 Purpose:
// - Provides the defaults: ./install_manifest.txt, /usr/local/ and ./install
// - Loads overrides from an optional config file
// - Validates values before any file is touched
//
// 🔄 Flow:
// 1. Start from Default()
// 2. Pick a parser by file extension
// 3. Decode the file over the defaults; absent keys keep their default
// 4. Validate
//
// Example config (YAML):
//
//	manifest: build/install_manifest.txt
//	prefix: /opt/app/
//	destination: stage
//	exclude:
//	  - "**/*.a"
//	  - "share/doc/**"
package config
