package process

import (
	"context"
	"errors"
	"os"
	"testing"
)

// PID 0 cannot be a valid user process target; large PIDs past the kernel
// pid_max are guaranteed unused.
const absentPID = 1<<22 + 7

func TestTerminate_MissingPID(t *testing.T) {
	err := Terminate(context.Background(), absentPID, false)
	if err == nil {
		t.Fatal("Terminate() on an absent PID should fail")
	}
	if !errors.Is(err, ErrProcessNotFound) {
		t.Errorf("error = %v, want ErrProcessNotFound", err)
	}
}

func TestTerminate_MissingPIDForced(t *testing.T) {
	err := Terminate(context.Background(), absentPID, true)
	if !errors.Is(err, ErrProcessNotFound) {
		t.Errorf("forced terminate on absent PID: error = %v, want ErrProcessNotFound", err)
	}
}

func TestSignal_ESRCHMapsToNotFound(t *testing.T) {
	err := Signal(absentPID, 0)
	if !errors.Is(err, ErrProcessNotFound) {
		t.Errorf("Signal(absent, 0) error = %v, want ErrProcessNotFound", err)
	}
}

func TestSignal_SelfNullSignal(t *testing.T) {
	// Signal 0 performs permission/existence checks without delivering
	// anything; sending it to ourselves must succeed.
	if err := Signal(int32(os.Getpid()), 0); err != nil {
		t.Errorf("Signal(self, 0) error = %v, want nil", err)
	}
}
