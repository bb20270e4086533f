// Command utilkit is the command-line front end of the utilkit library.
//
// The library itself lives in flat packages, one concern each:
//   - validate, numutil, strutil, collections: argument checks and helpers
//   - bitbuf: bit-level buffers and growable bit lists
//   - geom, svg: 2D geometry and an SVG element writer
//   - console: ANSI styling and progress output
//   - config: properties, INI and YAML configuration with live reload
//   - fileutil: file helpers, hashing, archives and stream compression
//   - netutil: single-shot HTTP downloads and TCP connections
//
// Run "utilkit --help" for the list of subcommands.
package main
