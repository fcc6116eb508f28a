package agentdb

import (
	"regexp"
	"sort"
	"strings"

	log "github.com/golang/glog"
	natural "github.com/maruel/natural"

	"github.com/johnblackford/agent/common_utils"
)

// toGenericPath collapses instance number and wildcard segments into
// the {i} placeholder used by the implemented data model.
func toGenericPath(path string) string {
	parts := strings.Split(path, ".")
	for inx, part := range parts {
		if part == "*" || isInstanceNumber(part) {
			parts[inx] = "{i}"
		}
	}
	return strings.Join(parts, ".")
}

func isInstanceNumber(segment string) bool {
	if segment == "" {
		return false
	}
	for _, ch := range segment {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// schemaPathRegex builds the regex used to validate a path against the
// implemented data model keys.
func schemaPathRegex(path string) (*regexp.Regexp, error) {
	expr := "^" + regexp.QuoteMeta(toGenericPath(path))
	if strings.HasSuffix(path, ".") {
		expr += ".*"
	}
	return regexp.Compile(expr + "$")
}

// storePathRegex builds the regex used to select database keys, with
// wildcard segments matching any instance number.
func storePathRegex(path string) (*regexp.Regexp, error) {
	parts := strings.Split(path, ".")
	quoted := make([]string, len(parts))
	for inx, part := range parts {
		if part == "*" {
			quoted[inx] = "[0-9]+"
		} else {
			quoted[inx] = regexp.QuoteMeta(part)
		}
	}
	expr := "^" + strings.Join(quoted, `\.`)
	if strings.HasSuffix(path, ".") {
		expr += ".*"
	}
	return regexp.Compile(expr + "$")
}

func isMetaSegment(segment string) bool {
	return strings.HasPrefix(segment, "__") && strings.HasSuffix(segment, "__")
}

func hasMetaSegment(path string) bool {
	for _, part := range strings.Split(path, ".") {
		if isMetaSegment(part) {
			return true
		}
	}
	return false
}

func (d *Database) schemaHasMatch(re *regexp.Regexp) bool {
	for key := range d.schema {
		if re.MatchString(key) {
			return true
		}
	}
	return false
}

// FindParams returns the full parameter paths that match the incoming
// path, which may be exact, wildcarded, or a partial path. Meta entries
// are never returned.
func (d *Database) FindParams(path string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.findParamsLocked(path)
}

func (d *Database) findParamsLocked(path string) ([]string, error) {
	dmRegex, err := schemaPathRegex(path)
	if err != nil {
		return nil, err
	}
	log.V(2).Infof("FindParams: Using regex %q to validate Path [%s] is in the Implemented Data Model", dmRegex, path)

	dbRegex, err := storePathRegex(path)
	if err != nil {
		return nil, err
	}
	log.V(2).Infof("FindParams: Using regex %q to retrieve values from the Database for Path [%s]", dbRegex, path)

	if !d.schemaHasMatch(dmRegex) {
		return nil, &NoSuchPathError{Path: path}
	}

	var found []string
	for key := range d.store {
		if dbRegex.MatchString(key) && !hasMetaSegment(key) {
			found = append(found, key)
		}
	}
	sort.Sort(natural.StringSlice(found))
	return found, nil
}

// FindInstances returns the concrete instance paths directly under
// partialPath, which must address a multi-instance object.
func (d *Database) FindInstances(partialPath string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.findInstancesLocked(partialPath)
}

func (d *Database) findInstancesLocked(partialPath string) ([]string, error) {
	if !strings.HasSuffix(partialPath, ".") {
		return nil, &NoSuchPathError{Path: partialPath}
	}

	dmRegex, err := schemaPathRegex(partialPath)
	if err != nil {
		return nil, err
	}
	log.V(2).Infof("FindInstances: Using regex %q to validate Path [%s] is in the Implemented Data Model", dmRegex, partialPath)

	dbRegex, err := storePathRegex(partialPath)
	if err != nil {
		return nil, err
	}
	log.V(2).Infof("FindInstances: Using regex %q to retrieve values from the Database for Path [%s]", dbRegex, partialPath)

	// The trailing dot adds one more split.
	partialLen := len(strings.Split(partialPath, ".")) - 1

	isImplemented := false
	for key := range d.schema {
		if dmRegex.MatchString(key) {
			keyParts := strings.Split(key, ".")
			if len(keyParts) > partialLen && keyParts[partialLen] == "{i}" {
				isImplemented = true
				break
			}
		}
	}
	if !isImplemented {
		return nil, &NoSuchPathError{Path: partialPath}
	}

	var found []string
	seen := make(map[string]bool)
	for key := range d.store {
		if !dbRegex.MatchString(key) || hasMetaSegment(key) {
			continue
		}
		keyParts := strings.Split(key, ".")
		if len(keyParts) <= partialLen {
			continue
		}
		foundKey := common_utils.BuildPathFromParts(keyParts, partialLen+1)
		if !seen[foundKey] {
			seen[foundKey] = true
			found = append(found, foundKey)
		}
	}
	sort.Sort(natural.StringSlice(found))
	return found, nil
}

// FindImplObjects returns the generic object paths implemented under
// partialPath. With nextLevel it returns only the immediate child
// objects, otherwise every object at any depth below partialPath.
func (d *Database) FindImplObjects(partialPath string, nextLevel bool) ([]string, error) {
	if !strings.HasSuffix(partialPath, ".") {
		return nil, &NoSuchPathError{Path: partialPath}
	}

	dmRegex, err := schemaPathRegex(partialPath)
	if err != nil {
		return nil, err
	}
	log.V(2).Infof("FindImplObjects: Using regex %q to validate Path [%s] is in the Implemented Data Model", dmRegex, partialPath)

	partialLen := len(strings.Split(partialPath, ".")) - 1

	isImplemented := false
	var found []string
	seen := make(map[string]bool)
	for key := range d.schema {
		if !dmRegex.MatchString(key) {
			continue
		}
		isImplemented = true

		// The last segment is the parameter name, so a key only
		// contributes an object if a deeper segment exists.
		keyParts := strings.Split(key, ".")
		if len(keyParts) <= partialLen+1 {
			continue
		}

		var foundKey string
		if nextLevel {
			foundKey = common_utils.BuildPathFromParts(keyParts, partialLen+1)
		} else {
			foundKey = common_utils.BuildPathFromParts(keyParts, len(keyParts)-1)
		}
		if !seen[foundKey] {
			seen[foundKey] = true
			found = append(found, foundKey)
		}
	}
	if !isImplemented {
		return nil, &NoSuchPathError{Path: partialPath}
	}
	sort.Sort(natural.StringSlice(found))
	return found, nil
}

// FindObjects resolves partialPath to the concrete object paths at its
// own depth, one per database row that sits underneath it. The path is
// validated against the implemented data model first so an unknown path
// fails even when no rows exist.
func (d *Database) FindObjects(partialPath string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.findObjectsLocked(partialPath)
}

func (d *Database) findObjectsLocked(partialPath string) ([]string, error) {
	if !strings.HasSuffix(partialPath, ".") {
		return nil, &NoSuchPathError{Path: partialPath}
	}

	dmRegex, err := schemaPathRegex(partialPath)
	if err != nil {
		return nil, err
	}
	log.V(2).Infof("FindObjects: Using regex %q to validate Path [%s] is in the Implemented Data Model", dmRegex, partialPath)

	dbRegex, err := storePathRegex(partialPath)
	if err != nil {
		return nil, err
	}
	log.V(2).Infof("FindObjects: Using regex %q to retrieve objects from the Database for Path [%s]", dbRegex, partialPath)

	if !d.schemaHasMatch(dmRegex) {
		return nil, &NoSuchPathError{Path: partialPath}
	}

	partialLen := len(strings.Split(partialPath, ".")) - 1

	var found []string
	seen := make(map[string]bool)
	for key := range d.store {
		if !dbRegex.MatchString(key) || hasMetaSegment(key) {
			continue
		}
		foundKey := common_utils.BuildPathFromParts(strings.Split(key, "."), partialLen)
		if !seen[foundKey] {
			seen[foundKey] = true
			found = append(found, foundKey)
		}
	}
	sort.Sort(natural.StringSlice(found))
	return found, nil
}

// IsParamWritable reports whether the implemented data model marks the
// parameter as readWrite.
func (d *Database) IsParamWritable(path string) (bool, error) {
	if access, ok := d.schema[toGenericPath(path)]; ok {
		return access == AccessReadWrite, nil
	}
	return false, &NoSuchPathError{Path: path}
}
