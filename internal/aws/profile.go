package aws

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// Profile is a named profile from the shared AWS config files
type Profile struct {
	Name   string
	Region string
	// Sources lists the files defining the profile ("credentials", "config")
	Sources []string
}

var (
	credentialsSectionRe = regexp.MustCompile(`^\[([^\]]+)\]$`)
	configSectionRe      = regexp.MustCompile(`^\[profile\s+([^\]]+)\]$`)
	configDefaultRe      = regexp.MustCompile(`^\[default\]$`)
	regionRe             = regexp.MustCompile(`^\s*region\s*=\s*(.+)$`)
)

// SharedConfigDir returns ~/.aws
func SharedConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aws"
	}
	return filepath.Join(home, ".aws")
}

// ListProfiles reads the profiles defined in dir/credentials and dir/config.
// Missing files are not an error.
func ListProfiles(dir string) ([]Profile, error) {
	var order []string
	byName := map[string]*Profile{}

	for _, src := range []struct {
		file     string
		isConfig bool
	}{
		{"credentials", false},
		{"config", true},
	} {
		parsed, err := parseSharedFile(filepath.Join(dir, src.file), src.file, src.isConfig)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}

		for _, p := range parsed {
			existing, ok := byName[p.Name]
			if !ok {
				byName[p.Name] = &p
				order = append(order, p.Name)
				continue
			}
			if existing.Region == "" {
				existing.Region = p.Region
			}
			existing.Sources = lo.Uniq(append(existing.Sources, p.Sources...))
		}
	}

	return lo.Map(order, func(name string, _ int) Profile { return *byName[name] }), nil
}

// LookupProfile finds a profile by name in dir
func LookupProfile(dir, name string) (Profile, bool, error) {
	profiles, err := ListProfiles(dir)
	if err != nil {
		return Profile{}, false, err
	}
	p, ok := lo.Find(profiles, func(p Profile) bool { return p.Name == name })
	return p, ok, nil
}

// parseSharedFile parses an AWS INI-style config file
func parseSharedFile(path, source string, isConfigFile bool) ([]Profile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var profiles []Profile
	var current *Profile

	start := func(name string) {
		if current != nil {
			profiles = append(profiles, *current)
		}
		current = &Profile{Name: strings.TrimSpace(name), Sources: []string{source}}
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if isConfigFile {
			if configDefaultRe.MatchString(line) {
				start("default")
				continue
			}
			if m := configSectionRe.FindStringSubmatch(line); len(m) == 2 {
				start(m[1])
				continue
			}
		} else if m := credentialsSectionRe.FindStringSubmatch(line); len(m) == 2 {
			start(m[1])
			continue
		}

		if current != nil {
			if m := regionRe.FindStringSubmatch(line); len(m) == 2 {
				current.Region = strings.TrimSpace(m[1])
			}
		}
	}

	if current != nil {
		profiles = append(profiles, *current)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}
