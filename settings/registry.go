package settings

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dasch-swiss/ark-resolver/resolver"
)

// Registry is the per-project redirect configuration. Project entries
// override defaults key by key; a project inherits every default it does
// not set itself.
type Registry struct {
	defaults map[string]string
	projects map[string]map[string]string
}

type registryDoc struct {
	Defaults map[string]any            `yaml:"defaults"`
	Projects map[string]map[string]any `yaml:"projects"`
}

// LoadRegistry loads a registry document from source, which is either a
// local file path or an http(s) URL. Remote fetches are bounded by the
// context deadline, if any.
func LoadRegistry(ctx context.Context, source string) (*Registry, error) {
	var (
		data []byte
		err  error
	)

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = fetchRegistry(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("load registry %s: %w", source, err)
	}

	return ParseRegistry(data)
}

// registryClient bounds remote registry fetches even when the caller
// passes an unbounded context.
var registryClient = &http.Client{Timeout: 10 * time.Second}

func fetchRegistry(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := registryClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// ParseRegistry parses a YAML registry document. Project shortcodes are
// normalized to lowercase; scalar values of any YAML type are kept as
// their string form, so flags may be written as plain booleans.
func ParseRegistry(data []byte) (*Registry, error) {
	var doc registryDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	registry := &Registry{
		defaults: make(map[string]string, len(doc.Defaults)),
		projects: make(map[string]map[string]string, len(doc.Projects)),
	}

	for key, value := range doc.Defaults {
		registry.defaults[key] = scalarString(value)
	}

	for projectID, entries := range doc.Projects {
		project := make(map[string]string, len(entries))
		for key, value := range entries {
			project[key] = scalarString(value)
		}
		registry.projects[strings.ToLower(projectID)] = project
	}

	return registry, nil
}

func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Default returns a registry default value.
func (r *Registry) Default(key string) (string, bool) {
	value, ok := r.defaults[key]
	return value, ok
}

// HasProject reports whether the project is present in the registry.
func (r *Registry) HasProject(projectID string) bool {
	_, ok := r.projects[strings.ToLower(projectID)]
	return ok
}

// ProjectIDs returns the shortcodes of all configured projects, in
// registry (lowercase) form.
func (r *Registry) ProjectIDs() []string {
	ids := make([]string, 0, len(r.projects))
	for id := range r.projects {
		ids = append(ids, id)
	}
	return ids
}

// Template returns the value of key for the project, falling back to the
// registry defaults. The lookup is case-insensitive on the project id.
func (r *Registry) Template(projectID, key string) (string, error) {
	project, ok := r.projects[strings.ToLower(projectID)]
	if !ok {
		return "", fmt.Errorf("%w: %s", resolver.ErrProjectNotFound, projectID)
	}

	if value, ok := project[key]; ok {
		return value, nil
	}
	if value, ok := r.defaults[key]; ok {
		return value, nil
	}

	return "", fmt.Errorf("%w: %s for project %s", resolver.ErrTemplateNotFound, key, projectID)
}

// Flag returns a boolean project setting. Absent or unparseable values
// report false.
func (r *Registry) Flag(projectID, key string) bool {
	value, err := r.Template(projectID, key)
	if err != nil {
		return false
	}

	flag, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return flag
}
