// Package agentdb implements the agent's data model engine. It couples
// an implemented data model (the schema of supported parameters and
// their access rights) with a persisted database of concrete values,
// and resolves wildcarded and partial parameter paths against both.
//
// Supported operations:
//   - Get command for full parameter paths, resolving meta values
//   - Update command for full parameter paths
//   - Insert and Delete commands for allow listed tables
//   - Find commands for wildcarded or partial parameter paths
package agentdb

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/golang/glog"

	"github.com/johnblackford/agent/common_utils"
)

// Access rights recorded per parameter in the implemented data model.
const (
	AccessReadOnly  = "readOnly"
	AccessReadWrite = "readWrite"
)

// Meta values resolved when a parameter is retrieved.
const (
	uptimeMetaValue     = "__UPTIME__"
	ipAddrMetaValue     = "__IPADDR__"
	currTimeMetaValue   = "__CURR_TIME__"
	numEntriesMetaValue = "__NUM_ENTRIES__"
)

const (
	nextInstNumKey    = "__NextInstNum__"
	localTimeZonePath = "Device.Time.LocalTimeZone"
	numEntriesSuffix  = "NumberOfEntries"

	cameraPicTable = "Device.Services.HomeAutomation.{i}.Camera.{i}.Pic."
	cameraPicRow   = "Device.Services.HomeAutomation.{i}.Camera.{i}.Pic.{i}."
)

var supportedInsertPaths = []string{
	cameraPicTable,
}

var supportedDeletePaths = []string{
	cameraPicRow,
}

// Database is the agent's view of the implemented data model and the
// persisted parameter values. Every mutating operation writes the
// database back to its backing file.
type Database struct {
	dbFilename string
	ipIntf     string
	startTime  time.Time

	mu          sync.RWMutex // guards store
	fileLock    sync.Mutex   // serializes file writes
	instNumLock sync.Mutex   // serializes instance number allocation

	schema map[string]string // immutable after load
	store  map[string]interface{}
}

// NewDatabase loads the implemented data model from dmFilename and the
// persisted database from dbFilename.
func NewDatabase(dmFilename, dbFilename string) (*Database, error) {
	log.V(1).Info("Initializing the Database...")

	d := &Database{
		dbFilename: dbFilename,
		startTime:  time.Now(),
		schema:     make(map[string]string),
		store:      make(map[string]interface{}),
	}

	dmData, err := os.ReadFile(dmFilename)
	if err != nil {
		return nil, fmt.Errorf("reading the Implemented Data Model: %v", err)
	}
	if err = json.Unmarshal(dmData, &d.schema); err != nil {
		return nil, fmt.Errorf("Implemented Data Model is NOT properly formatted JSON: %v", err)
	}

	dbData, err := os.ReadFile(dbFilename)
	if err != nil {
		return nil, fmt.Errorf("reading the Persisted Database: %v", err)
	}
	if err = json.Unmarshal(dbData, &d.store); err != nil {
		return nil, fmt.Errorf("Persisted Database is NOT properly formatted JSON: %v", err)
	}
	return d, nil
}

// SetIPInterface selects the network interface used to resolve the
// __IPADDR__ meta value. An empty name picks the first non-loopback
// interface with an IPv4 address.
func (d *Database) SetIPInterface(intf string) {
	d.ipIntf = intf
}

// Get returns the value of the incoming path, resolving meta values,
// or fails with a NoSuchPathError.
func (d *Database) Get(path string) (interface{}, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.getLocked(path)
}

func (d *Database) getLocked(path string) (interface{}, error) {
	value, ok := d.store[path]
	if !ok {
		return nil, &NoSuchPathError{Path: path}
	}

	switch value {
	case uptimeMetaValue:
		return int(time.Since(d.startTime).Seconds()), nil
	case ipAddrMetaValue:
		addr, err := common_utils.GetIPAddr(d.ipIntf)
		if err != nil {
			log.Warningf("Could not determine the IP Address: %v", err)
			return "", nil
		}
		return addr, nil
	case currTimeMetaValue:
		timeZone := ""
		if tz, ok := d.store[localTimeZonePath]; ok {
			timeZone = fmt.Sprint(tz)
		}
		return common_utils.GetTimeAsStr(time.Now(), timeZone), nil
	case numEntriesMetaValue:
		instPath := strings.TrimSuffix(path, numEntriesSuffix) + "."
		instances, err := d.findInstancesLocked(instPath)
		if err != nil {
			return nil, err
		}
		return len(instances), nil
	}
	return value, nil
}

// GetStr returns the value of the incoming path rendered as a string.
func (d *Database) GetStr(path string) (string, error) {
	value, err := d.Get(path)
	if err != nil {
		return "", err
	}
	return FormatValue(value), nil
}

// GetBool returns the value of the incoming path as a boolean.
func (d *Database) GetBool(path string) (bool, error) {
	value, err := d.Get(path)
	if err != nil {
		return false, err
	}
	switch val := value.(type) {
	case bool:
		return val, nil
	case string:
		parsed, parseErr := strconv.ParseBool(val)
		return parseErr == nil && parsed, nil
	case float64:
		return val != 0, nil
	case int:
		return val != 0, nil
	}
	return false, nil
}

// GetInt returns the value of the incoming path as an integer.
func (d *Database) GetInt(path string) (int, error) {
	value, err := d.Get(path)
	if err != nil {
		return 0, err
	}
	return toInt(value)
}

// Update changes the value of the incoming path and persists the
// database, or fails with a NoSuchPathError.
func (d *Database) Update(path string, value interface{}) error {
	d.mu.Lock()
	if _, ok := d.store[path]; !ok {
		d.mu.Unlock()
		return &NoSuchPathError{Path: path}
	}
	d.store[path] = value
	d.mu.Unlock()

	return d.save()
}

// Insert creates a new row in the table addressed by partialPath and
// returns its instance number. Only allow listed tables are supported.
func (d *Database) Insert(partialPath string) (int, error) {
	if _, err := d.FindImplObjects(partialPath, true); err != nil {
		return -1, err
	}

	genericPath := toGenericPath(partialPath)
	log.V(2).Infof("Insert: Using generic path %q to validate Path [%s] is in the Supported Insert Path List", genericPath, partialPath)
	if !inPathList(supportedInsertPaths, genericPath) {
		return -1, &NoSuchPathError{Path: partialPath}
	}
	if genericPath != cameraPicTable {
		return -1, ErrNotImplemented
	}

	nextInstNum, err := d.insertPicRow(partialPath)
	if err != nil {
		return -1, err
	}
	return nextInstNum, d.save()
}

func (d *Database) insertPicRow(partialPath string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.instNumLock.Lock()
	defer d.instNumLock.Unlock()

	nextInstNumPath := partialPath + nextInstNumKey
	raw, ok := d.store[nextInstNumPath]
	if !ok {
		return -1, &NoSuchPathError{Path: nextInstNumPath}
	}
	nextInstNum, err := toInt(raw)
	if err != nil {
		return -1, err
	}

	d.store[nextInstNumPath] = nextInstNum + 1
	d.store[partialPath+strconv.Itoa(nextInstNum)+".URL"] = ""
	return nextInstNum, nil
}

// Delete removes the row addressed by partialPath, including every
// parameter underneath it, and persists the database. Only allow
// listed tables are supported.
func (d *Database) Delete(partialPath string) error {
	if _, err := d.FindImplObjects(partialPath, true); err != nil {
		return err
	}

	genericPath := toGenericPath(partialPath)
	log.V(2).Infof("Delete: Using generic path %q to validate Path [%s] is in the Supported Delete Path List", genericPath, partialPath)
	if !inPathList(supportedDeletePaths, genericPath) {
		return &NoSuchPathError{Path: partialPath}
	}
	if genericPath != cameraPicRow {
		return ErrNotImplemented
	}

	d.mu.Lock()
	for key := range d.store {
		if strings.HasPrefix(key, partialPath) {
			delete(d.store, key)
		}
	}
	d.mu.Unlock()

	return d.save()
}

// save writes the database contents back into the backing file. The
// contents land in a temporary file first so a crash mid-write never
// leaves a truncated database behind.
func (d *Database) save() error {
	d.fileLock.Lock()
	defer d.fileLock.Unlock()

	d.mu.RLock()
	data, err := json.Marshal(d.store)
	d.mu.RUnlock()
	if err != nil {
		return err
	}

	tmpName := d.dbFilename + ".tmp"
	if err = os.WriteFile(tmpName, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, d.dbFilename)
}

// FormatValue renders a database value the way it appears in message
// parameter maps. JSON numbers print without a decimal point when they
// hold an integral value.
func FormatValue(value interface{}) string {
	switch val := value.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	}
	return fmt.Sprint(value)
}

func toInt(value interface{}) (int, error) {
	switch val := value.(type) {
	case int:
		return val, nil
	case float64:
		return int(val), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("value %q is not an integer", val)
		}
		return parsed, nil
	}
	return 0, fmt.Errorf("value %v is not an integer", value)
}

func inPathList(pathList []string, path string) bool {
	for _, entry := range pathList {
		if entry == path {
			return true
		}
	}
	return false
}
