// Package common provides the pieces shared by the tkv command line tool and the
// library packages that are not part of the storage API itself.
//
// The package focuses on:
//   - Custom logging implementation integrated with Dragonboat's logger package
//   - The configuration structure of the command line tool
//
// Key Components:
//
//   - Logger: A logger.ILogger implementation writing "LEVEL | package | message"
//     lines. InitLoggers installs it as the global factory and sets the level of
//     the "typeddb", "engine" and "cli" loggers. Unknown level strings are reported
//     as errors by ParseLogLevel.
//
//   - Config: The resolved settings (data directory, engine, sync, log level).
//     String renders them in sections for the startup output.
package common
