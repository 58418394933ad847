package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/CrestNiraj12/curatetl/domain"
)

// DefaultRetentionPath is read when --config is not given.
const DefaultRetentionPath = "conf.yaml"

// RetentionFile is the on-disk rule configuration.
type RetentionFile struct {
	Username     string   `yaml:"username"`
	SafeHashtags []string `yaml:"safe_hashtags"`
	SafeText     []string `yaml:"safe_text"`
	SafeIDs      idList   `yaml:"safe_ids"`
	SafePrefix   []string `yaml:"safe_prefix"`
}

// UnmarshalYAML also accepts Ruby symbol keys (":username:"), the format
// older rule files were written in.
func (f *RetentionFile) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			k := node.Content[i]
			k.Value = strings.TrimPrefix(k.Value, ":")
		}
	}
	type plain RetentionFile
	return node.Decode((*plain)(f))
}

// idList accepts ids written either as YAML integers or strings. Large
// integers are kept as their literal text, never as floats.
type idList []string

func (l *idList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: safe_ids must be a list", node.Line)
	}
	out := make(idList, 0, len(node.Content))
	for _, n := range node.Content {
		if n.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: safe_ids entries must be scalars", n.Line)
		}
		out = append(out, strings.TrimSpace(n.Value))
	}
	*l = out
	return nil
}

// LoadRetention reads and validates the rule file at path.
func LoadRetention(path string) (RetentionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RetentionFile{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var f RetentionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return RetentionFile{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	f.Username = strings.TrimPrefix(strings.TrimSpace(f.Username), "@")
	if f.Username == "" {
		return RetentionFile{}, fmt.Errorf("%s: username is required", path)
	}
	f.SafeHashtags = trimHashes(f.SafeHashtags)
	return f, nil
}

func trimHashes(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Retention builds the rule inputs. Mode flags and the age threshold come
// from the command line.
func (f RetentionFile) Retention(olderThanDays *int, onlyRetweets, onlyMentions bool) domain.RetentionConfig {
	return domain.RetentionConfig{
		Owner:         f.Username,
		SafeHashtags:  f.SafeHashtags,
		SafeText:      f.SafeText,
		SafeIDs:       []string(f.SafeIDs),
		SafePrefixes:  f.SafePrefix,
		OlderThanDays: olderThanDays,
		OnlyRetweets:  onlyRetweets,
		OnlyMentions:  onlyMentions,
	}
}
