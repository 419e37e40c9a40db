package docker

import (
	"context"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

func newDockerClient() (*client.Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}

// StopContainer asks a container to stop, waiting up to timeoutSecs before
// the daemon force-kills it. This is the graceful path for entries whose
// port is owned by a container proxy rather than a killable local process.
func StopContainer(ctx context.Context, containerID string, timeoutSecs int) error {
	cli, err := newDockerClient()
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	opts := container.StopOptions{}
	if timeoutSecs > 0 {
		opts.Timeout = &timeoutSecs
	}
	return cli.ContainerStop(ctx, containerID, opts)
}

// KillContainer sends SIGKILL to a container.
func KillContainer(ctx context.Context, containerID string) error {
	cli, err := newDockerClient()
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	return cli.ContainerKill(ctx, containerID, "SIGKILL")
}
