package scanner

import (
	"context"

	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/kaval-sh/kaval/internal/model"
)

// gopsutilSockets reads the socket table via gopsutil.
type gopsutilSockets struct{}

func (g *gopsutilSockets) Sockets(ctx context.Context, includeTCP, includeUDP bool) ([]SocketRecord, error) {
	var records []SocketRecord

	if includeTCP {
		conns, err := net.ConnectionsWithContext(ctx, "tcp")
		if err != nil {
			return nil, err
		}
		records = appendRecords(records, conns, model.ProtocolTCP)
	}

	if includeUDP {
		conns, err := net.ConnectionsWithContext(ctx, "udp")
		if err != nil {
			return nil, err
		}
		records = appendRecords(records, conns, model.ProtocolUDP)
	}

	return records, nil
}

func appendRecords(records []SocketRecord, conns []net.ConnectionStat, proto model.Protocol) []SocketRecord {
	for _, conn := range conns {
		if conn.Pid == 0 {
			continue // kernel-owned or unresolvable socket
		}
		rec := SocketRecord{
			Protocol: proto,
			IP:       conn.Laddr.IP,
			Port:     conn.Laddr.Port,
			PIDs:     []int32{conn.Pid},
		}
		if proto == model.ProtocolTCP {
			rec.State = conn.Status
		}
		records = append(records, rec)
	}
	return records
}

// gopsutilProcesses reads the process table via gopsutil.
type gopsutilProcesses struct{}

func (g *gopsutilProcesses) Snapshot(ctx context.Context) (map[int32]ProcessSnapshot, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := make(map[int32]ProcessSnapshot, len(procs))
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue // process exited mid-walk
		}

		ps := ProcessSnapshot{PID: p.Pid, Name: name}
		ps.Cmdline, _ = p.CmdlineWithContext(ctx)
		ps.CPUPercent, _ = p.CPUPercentWithContext(ctx)
		if mem, err := p.MemoryInfoWithContext(ctx); err == nil && mem != nil {
			ps.MemoryRSS = mem.RSS
		}
		ps.CreateTime, _ = p.CreateTimeWithContext(ctx)

		snapshot[p.Pid] = ps
	}
	return snapshot, nil
}
