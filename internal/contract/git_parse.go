package contract

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/hammer/schema"
)

// ParseCommitObject reads the headers of a raw commit object as printed by
// "git cat-file commit". Parents are taken verbatim, so grafted boundaries
// of a shallow clone still report their original parents.
func ParseCommitObject(raw []byte) (schema.CommitInfo, error) {
	var info schema.CommitInfo
	foundAuthor := false
	for line := range strings.SplitSeq(string(raw), "\n") {
		if line == "" {
			break // end of headers
		}
		key, value, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		switch key {
		case "parent":
			info.ParentIDs = append(info.ParentIDs, value)
		case "author":
			name, email, when, err := ParseSignature(value)
			if err != nil {
				return schema.CommitInfo{}, err
			}
			info.AuthorName, info.AuthorEmail, info.AuthorTime = name, email, when
			foundAuthor = true
		}
	}
	if !foundAuthor {
		return schema.CommitInfo{}, errors.New("missing author header")
	}
	return info, nil
}

// ParseSignature splits "Name <email> 1512531224 +0100" into its parts.
// The returned time carries the signature's own UTC offset.
func ParseSignature(sig string) (name, email string, when time.Time, err error) {
	open := strings.LastIndex(sig, "<")
	closing := strings.LastIndex(sig, ">")
	if open < 0 || closing < open {
		return "", "", time.Time{}, fmt.Errorf("malformed signature %q", sig)
	}
	name = strings.TrimSpace(sig[:open])
	email = sig[open+1 : closing]

	fields := strings.Fields(sig[closing+1:])
	if len(fields) != 2 {
		return "", "", time.Time{}, fmt.Errorf("malformed signature time %q", sig)
	}
	secs, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("malformed signature time %q: %w", sig, err)
	}
	offset, err := parseTimezone(fields[1])
	if err != nil {
		return "", "", time.Time{}, err
	}
	return name, email, time.Unix(secs, 0).In(schema.FixedZone(offset)), nil
}

// parseTimezone converts "+hhmm" or "-hhmm" into seconds east of UTC.
func parseTimezone(tz string) (int, error) {
	if len(tz) != 5 || (tz[0] != '+' && tz[0] != '-') {
		return 0, fmt.Errorf("malformed timezone %q", tz)
	}
	hours, err := strconv.Atoi(tz[1:3])
	if err != nil {
		return 0, fmt.Errorf("malformed timezone %q: %w", tz, err)
	}
	minutes, err := strconv.Atoi(tz[3:5])
	if err != nil {
		return 0, fmt.Errorf("malformed timezone %q: %w", tz, err)
	}
	offset := hours*3600 + minutes*60
	if tz[0] == '-' {
		offset = -offset
	}
	return offset, nil
}

// ParseTree reads "git ls-tree -r -z" output and keeps blob entries only.
func ParseTree(raw []byte) ([]schema.TreeEntry, error) {
	var entries []schema.TreeEntry
	for record := range bytes.SplitSeq(raw, []byte{0}) {
		if len(record) == 0 {
			continue
		}
		meta, path, ok := strings.Cut(string(record), "\t")
		if !ok {
			return nil, fmt.Errorf("malformed tree entry %q", record)
		}
		fields := strings.Fields(meta)
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed tree entry %q", record)
		}
		if fields[1] != "blob" {
			continue
		}
		entries = append(entries, schema.TreeEntry{Path: path, BlobID: fields[2]})
	}
	return entries, nil
}

// isObjectID reports whether s looks like a full SHA-1 or SHA-256 object name.
func isObjectID(s string) bool {
	if len(s) != 40 && len(s) != 64 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// ParseBlamePorcelain reads "git blame --porcelain" output and groups
// consecutive lines from the same commit into hunks.
func ParseBlamePorcelain(r io.Reader) ([]schema.BlameHunk, error) {
	type commitMeta struct{ author, mail string }
	metas := make(map[string]*commitMeta)

	var hunks []schema.BlameHunk
	var current string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line == "" && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		line = strings.TrimSuffix(line, "\n")

		if content, ok := strings.CutPrefix(line, "\t"); ok {
			if current == "" {
				return nil, errors.New("blame content before header")
			}
			meta := metas[current]
			author := strings.TrimSpace(meta.author + " " + meta.mail)
			n := len(hunks)
			if n > 0 && hunks[n-1].CommitID == current {
				hunks[n-1].Lines = append(hunks[n-1].Lines, content)
			} else {
				hunks = append(hunks, schema.BlameHunk{CommitID: current, Author: author, Lines: []string{content}})
			}
			continue
		}

		key, value, _ := strings.Cut(line, " ")
		if isObjectID(key) {
			current = key
			if _, ok := metas[current]; !ok {
				metas[current] = &commitMeta{}
			}
			continue
		}
		switch key {
		case "author":
			metas[current].author = value
		case "author-mail":
			metas[current].mail = value
		}
	}
	return hunks, nil
}

// ParseRawDiff reads "git diff-tree -r -z --raw" output.
func ParseRawDiff(raw []byte) (schema.ChangeSet, error) {
	var cs schema.ChangeSet
	tokens := strings.Split(string(raw), "\x00")
	for i := 0; i < len(tokens); i++ {
		meta := tokens[i]
		if meta == "" {
			continue
		}
		if !strings.HasPrefix(meta, ":") {
			continue // commit id line
		}
		fields := strings.Fields(meta)
		if len(fields) < 5 || i+1 >= len(tokens) {
			return schema.ChangeSet{}, fmt.Errorf("malformed raw diff entry %q", meta)
		}
		status := fields[4][0]
		path := tokens[i+1]
		i++
		switch status {
		case 'A':
			cs.Added = append(cs.Added, path)
		case 'D':
			cs.Deleted = append(cs.Deleted, path)
		case 'M', 'T':
			cs.Modified = append(cs.Modified, schema.PathPair{From: path, To: path})
		case 'R', 'C':
			if i+1 >= len(tokens) {
				return schema.ChangeSet{}, fmt.Errorf("missing destination for %q", meta)
			}
			dest := tokens[i+1]
			i++
			if status == 'R' {
				cs.Renamed = append(cs.Renamed, schema.PathPair{From: path, To: dest})
			} else {
				cs.Added = append(cs.Added, dest)
			}
		}
	}
	return cs, nil
}

// ParseNumstat reads "git diff-tree -r -z --numstat" output. Binary files
// report "-" counts and are flagged rather than counted.
func ParseNumstat(raw []byte) ([]schema.NumstatEntry, error) {
	var entries []schema.NumstatEntry
	tokens := strings.Split(string(raw), "\x00")
	for i := 0; i < len(tokens); i++ {
		tok := strings.TrimPrefix(tokens[i], "\n")
		if tok == "" {
			continue
		}
		fields := strings.SplitN(tok, "\t", 3)
		if len(fields) != 3 {
			continue // commit id line
		}
		entry := schema.NumstatEntry{Path: fields[2]}
		if entry.Path == "" {
			// rename: "<added>\t<deleted>\t\0<from>\0<to>\0"
			if i+2 >= len(tokens) {
				return nil, fmt.Errorf("malformed numstat rename %q", tok)
			}
			entry.Path = tokens[i+2]
			i += 2
		}
		if fields[0] == "-" || fields[1] == "-" {
			entry.Binary = true
		} else {
			var err error
			if entry.Added, err = strconv.Atoi(fields[0]); err != nil {
				return nil, fmt.Errorf("malformed numstat %q: %w", tok, err)
			}
			if entry.Deleted, err = strconv.Atoi(fields[1]); err != nil {
				return nil, fmt.Errorf("malformed numstat %q: %w", tok, err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
