// Package services maps ports and process names to known developer services.
package services

import (
	"strings"

	"github.com/kaval-sh/kaval/internal/model"
)

// matchKind selects how a name rule is matched against the process name.
type matchKind int

const (
	matchContains matchKind = iota
	matchEquals
	matchPrefix
)

// nameRule matches a lowercased process name to a service.
type nameRule struct {
	pattern  string
	kind     matchKind
	label    string
	category model.ServiceCategory
}

// nameRules is the ordered name-based catalog. Process identity is a more
// stable signal than port number, so these are consulted before the port
// table.
var nameRules = []nameRule{
	// Databases
	{"postgres", matchContains, "PostgreSQL", model.CategoryDatabase},
	{"postmaster", matchContains, "PostgreSQL", model.CategoryDatabase},
	{"mysqld", matchContains, "MySQL", model.CategoryDatabase},
	{"mariadbd", matchContains, "MySQL", model.CategoryDatabase},
	{"mariadb", matchContains, "MySQL", model.CategoryDatabase},
	{"mongod", matchContains, "MongoDB", model.CategoryDatabase},
	{"mongos", matchContains, "MongoDB", model.CategoryDatabase},
	{"cockroach", matchContains, "CockroachDB", model.CategoryDatabase},

	// Cache / message brokers
	{"redis-server", matchContains, "Redis", model.CategoryCache},
	{"redis", matchEquals, "Redis", model.CategoryCache},
	{"memcached", matchContains, "Memcached", model.CategoryCache},
	{"kafka", matchContains, "Kafka", model.CategoryCache},
	{"rabbitmq", matchContains, "RabbitMQ", model.CategoryCache},
	{"beam.smp", matchEquals, "RabbitMQ", model.CategoryCache},

	// Container runtimes
	{"docker", matchContains, "Docker", model.CategoryContainer},
	{"containerd", matchContains, "Docker", model.CategoryContainer},
	{"colima", matchContains, "Colima", model.CategoryContainer},
	{"podman", matchContains, "Podman", model.CategoryContainer},

	// Dev tooling
	{"ollama", matchContains, "Ollama", model.CategoryDevServer},
	{"code helper", matchContains, "VS Code", model.CategoryDevServer},
	{"code - ", matchPrefix, "VS Code", model.CategoryDevServer},
	{"cursor helper", matchContains, "Cursor", model.CategoryDevServer},
	{"electron", matchContains, "Electron", model.CategoryDevServer},

	// Browsers
	{"brave browser", matchContains, "Brave", model.CategoryBrowser},
	{"brave helper", matchContains, "Brave", model.CategoryBrowser},
	{"google chrome", matchContains, "Chrome", model.CategoryBrowser},
	{"chrome helper", matchContains, "Chrome", model.CategoryBrowser},
	{"firefox", matchContains, "Firefox", model.CategoryBrowser},
	{"geckodriver", matchContains, "Firefox", model.CategoryBrowser},
	{"safari", matchContains, "Safari", model.CategoryBrowser},
	{"webkit", matchContains, "Safari", model.CategoryBrowser},

	// System daemons
	{"sshd", matchContains, "SSH", model.CategorySystem},
	{"nginx", matchContains, "Nginx", model.CategorySystem},
	{"httpd", matchContains, "Apache", model.CategorySystem},
	{"apache", matchContains, "Apache", model.CategorySystem},
	{"caddy", matchContains, "Caddy", model.CategorySystem},
	{"grafana", matchContains, "Grafana", model.CategorySystem},
	{"prometheus", matchContains, "Prometheus", model.CategorySystem},
	{"controlcenter", matchContains, "AirPlay", model.CategorySystem},
	{"sharingd", matchContains, "Sharing", model.CategorySystem},
	{"rapportd", matchContains, "Rapport", model.CategorySystem},
	{"identityservicesd", matchContains, "Identity", model.CategorySystem},
	{"systemd-resolve", matchContains, "DNS", model.CategorySystem},
}

// portService is a known service identified by its well-known port.
type portService struct {
	label    string
	category model.ServiceCategory
}

// portTable maps well-known ports to services. Consulted only when no name
// rule matched.
var portTable = map[uint32]portService{
	// Dev servers
	3000:  {"Next.js / Rails", model.CategoryDevServer},
	3001:  {"React Dev", model.CategoryDevServer},
	4000:  {"Phoenix", model.CategoryDevServer},
	4200:  {"Angular", model.CategoryDevServer},
	5173:  {"Vite", model.CategoryDevServer},
	5174:  {"Vite", model.CategoryDevServer},
	8000:  {"Django / FastAPI", model.CategoryDevServer},
	8080:  {"HTTP Alt", model.CategoryDevServer},
	8443:  {"HTTPS Alt", model.CategoryDevServer},
	8888:  {"Jupyter", model.CategoryDevServer},
	9000:  {"PHP-FPM", model.CategoryDevServer},
	11434: {"Ollama", model.CategoryDevServer},
	19006: {"Expo", model.CategoryDevServer},

	// Databases
	3306:  {"MySQL", model.CategoryDatabase},
	5432:  {"PostgreSQL", model.CategoryDatabase},
	5433:  {"PostgreSQL Alt", model.CategoryDatabase},
	9200:  {"Elasticsearch", model.CategoryDatabase},
	26257: {"CockroachDB", model.CategoryDatabase},
	27017: {"MongoDB", model.CategoryDatabase},

	// Cache / brokers
	5672:  {"RabbitMQ", model.CategoryCache},
	6379:  {"Redis", model.CategoryCache},
	9092:  {"Kafka", model.CategoryCache},
	11211: {"Memcached", model.CategoryCache},
	15672: {"RabbitMQ UI", model.CategoryCache},

	// Container / orchestration
	2375: {"Docker", model.CategoryContainer},
	2376: {"Docker", model.CategoryContainer},
	6443: {"Kubernetes API", model.CategoryContainer},

	// System
	22:   {"SSH", model.CategorySystem},
	53:   {"DNS", model.CategorySystem},
	80:   {"HTTP", model.CategorySystem},
	443:  {"HTTPS", model.CategorySystem},
	2019: {"Caddy Admin", model.CategorySystem},
	9090: {"Prometheus", model.CategorySystem},
}

// Classify resolves a port and process name to a known-service label and
// category. Name rules win over the port table; a miss on both yields an
// empty label and CategoryUnknown.
func Classify(port uint32, processName string) (string, model.ServiceCategory) {
	name := strings.ToLower(processName)
	for _, r := range nameRules {
		if r.matches(name) {
			return r.label, r.category
		}
	}
	if s, ok := portTable[port]; ok {
		return s.label, s.category
	}
	return "", model.CategoryUnknown
}

func (r nameRule) matches(name string) bool {
	switch r.kind {
	case matchEquals:
		return name == r.pattern
	case matchPrefix:
		return strings.HasPrefix(name, r.pattern)
	default:
		return strings.Contains(name, r.pattern)
	}
}
