package process

import "syscall"

// SignalMap resolves signal names to syscall.Signal values. Full names
// (SIGTERM), short names (TERM) and the common numeric forms are accepted.
var SignalMap = map[string]syscall.Signal{
	"SIGTERM": syscall.SIGTERM,
	"SIGKILL": syscall.SIGKILL,
	"SIGHUP":  syscall.SIGHUP,
	"SIGINT":  syscall.SIGINT,
	"SIGQUIT": syscall.SIGQUIT,
	"TERM":    syscall.SIGTERM,
	"KILL":    syscall.SIGKILL,
	"HUP":     syscall.SIGHUP,
	"INT":     syscall.SIGINT,
	"QUIT":    syscall.SIGQUIT,
	"9":       syscall.SIGKILL,
	"15":      syscall.SIGTERM,
}
