/*
Package config holds drivelog's explicit runtime configuration.

Settings are layered, later sources winning:

 1. defaults (region us-east-1, table honda-hackathon1, log level info)
 2. an optional YAML file
 3. dotenv files, read without touching the process environment
 4. the process environment

Example YAML:

	region: us-east-1
	table: honda-hackathon1
	bucket: p3na-18gus.3101.027
	endpoint: http://localhost:8000
	logLevel: debug

Client constructors take a *Config; there is no package-level client or credential state.
*/
package config
