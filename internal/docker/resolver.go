// Package docker resolves published host ports to their containers.
package docker

import (
	"context"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	"github.com/kaval-sh/kaval/internal/model"
)

// Resolver resolves host ports to Docker container info.
type Resolver interface {
	Resolve(ctx context.Context) (map[int]*ContainerPort, error)
}

// ContainerPort maps a published host port to its container and the port
// inside the container.
type ContainerPort struct {
	Container     model.ContainerInfo
	HostPort      int
	ContainerPort int
	Protocol      string
}

// dockerAPI is the subset of the Docker client the resolver needs (for
// testing).
type dockerAPI interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	Close() error
}

type dockerResolver struct {
	newClient func() (dockerAPI, error)
}

// NewResolver creates a Resolver that talks to the Docker daemon.
func NewResolver() Resolver {
	return &dockerResolver{
		newClient: func() (dockerAPI, error) {
			return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
		},
	}
}

// Resolve queries Docker for running containers and builds a host-port →
// container map. A missing or unreachable daemon yields an empty map, not
// an error; container enrichment is strictly best effort.
func (r *dockerResolver) Resolve(ctx context.Context) (map[int]*ContainerPort, error) {
	cli, err := r.newClient()
	if err != nil {
		return map[int]*ContainerPort{}, nil
	}
	defer func() { _ = cli.Close() }()

	containers, err := cli.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return map[int]*ContainerPort{}, nil
	}

	result := make(map[int]*ContainerPort)
	for _, c := range containers {
		info := model.ContainerInfo{
			Name:  containerName(c.Names),
			Image: c.Image,
			ID:    shortID(c.ID),
		}
		for _, p := range c.Ports {
			if p.PublicPort == 0 {
				continue // exposed but not published on the host
			}
			result[int(p.PublicPort)] = &ContainerPort{
				Container:     info,
				HostPort:      int(p.PublicPort),
				ContainerPort: int(p.PrivatePort),
				Protocol:      p.Type,
			}
		}
	}
	return result, nil
}

// containerName strips the leading "/" Docker puts on container names.
func containerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}

// shortID returns the familiar 12-char form of a container ID.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
