// Package lists loads the line-delimited blacklist and hot-term files.
// Files are re-read on every Current call, so edits apply on the next cycle without restart.
package lists

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/dealscope/pkg/domain"
)

// Snapshot is an immutable view of both lists, Version changes when any content changes
type Snapshot struct {
	Blacklist []string
	HotTerms  []string
	Version   string
}

// Blacklisted returns the first blacklist term found in title, case-insensitive
func (s Snapshot) Blacklisted(title string) (string, bool) {
	lt := strings.ToLower(title)
	for _, term := range s.Blacklist {
		if strings.Contains(lt, term) {
			return term, true
		}
	}
	return "", false
}

// Files reads the two list files
type Files struct {
	BlacklistPath string
	HotTermsPath  string

	mu       sync.Mutex
	reported map[string]string // path -> last logged error, to log each failure once
	last     Snapshot
}

// NewFiles makes a list loader for the given paths, empty path disables the list
func NewFiles(blacklistPath, hotTermsPath string) *Files {
	return &Files{BlacklistPath: blacklistPath, HotTermsPath: hotTermsPath, reported: map[string]string{}}
}

// Current loads a fresh snapshot. A missing or unreadable file is treated as empty.
func (f *Files) Current() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	blRaw := f.read(f.BlacklistPath)
	htRaw := f.read(f.HotTermsPath)

	h := sha256.New()
	_, _ = h.Write(blRaw)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(htRaw)
	version := hex.EncodeToString(h.Sum(nil))[:12]

	if version == f.last.Version {
		return f.last
	}

	snap := Snapshot{Blacklist: parseLines(blRaw, true), HotTerms: parseLines(htRaw, false), Version: version}
	if f.last.Version != "" {
		lgr.Printf("[INFO] lists reloaded, version %s, %d blacklist terms, %d hot terms",
			version, len(snap.Blacklist), len(snap.HotTerms))
	}
	f.last = snap
	return snap
}

// AddBlacklistTerm appends a term to the blacklist file. Adding an existing term is a no-op
// and returns false.
func (f *Files) AddBlacklistTerm(term string) (bool, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false, errors.New("empty term")
	}
	if f.BlacklistPath == "" {
		return false, &domain.ConfigFailure{Path: f.BlacklistPath, Err: errors.New("blacklist file not configured")}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	raw := f.read(f.BlacklistPath)
	for _, existing := range parseLines(raw, true) {
		if existing == term {
			return false, nil
		}
	}

	fh, err := os.OpenFile(f.BlacklistPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec // path from config
	if err != nil {
		return false, &domain.ConfigFailure{Path: f.BlacklistPath, Err: err}
	}
	line := term + "\n"
	if len(raw) > 0 && !bytes.HasSuffix(raw, []byte("\n")) {
		line = "\n" + line
	}
	if _, err := fh.WriteString(line); err != nil {
		_ = fh.Close()
		return false, &domain.ConfigFailure{Path: f.BlacklistPath, Err: err}
	}
	if err := fh.Close(); err != nil {
		return false, &domain.ConfigFailure{Path: f.BlacklistPath, Err: err}
	}
	return true, nil
}

// read returns file content, nil on any failure. Each distinct failure is logged once.
func (f *Files) read(path string) []byte {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path from config
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		cf := &domain.ConfigFailure{Path: path, Err: err}
		if f.reported[path] != cf.Error() {
			lgr.Printf("[WARN] %v, treated as empty", cf)
			f.reported[path] = cf.Error()
		}
		return nil
	}
	delete(f.reported, path)
	return data
}

// parseLines splits content to trimmed non-empty lines, skipping # comments and duplicates
func parseLines(data []byte, lower bool) []string {
	var res []string
	seen := map[string]bool{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if lower {
			line = strings.ToLower(line)
		}
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		res = append(res, line)
	}
	return res
}
