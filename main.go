// tb-hooklog: hook event logger for the TinkerBelle agent hooks
//
// Run once per hook invocation. Reads one JSON event from stdin, redacts
// values under sensitive keys and appends it as one NDJSON line to the
// project's shared hook log.
//
// Usage:
//
//	tb-hooklog < event.json                 # log one event (same as 'log')
//	tb-hooklog --strict < event.json        # exit 2 if the event cannot be logged
//	tb-hooklog validate                     # check .mcp.json and .claude/settings.json
//	tb-hooklog status                       # show resolved config and log state
package main

import "github.com/tinkerbelle-io/tb-hooklog/cmd"

var version = "dev"

func main() {
	cmd.Execute(version)
}
