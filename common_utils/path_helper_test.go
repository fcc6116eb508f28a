package common_utils

import (
	"strings"
	"testing"
)

func TestBuildPathFromParts(t *testing.T) {
	tds := []struct {
		desc     string
		path     string
		numParts int
		want     string
	}{
		{"object path", "Device.Object.Parameter", 2, "Device.Object."},
		{"table path full depth", "Device.Object.Table.1.Parameter", 4, "Device.Object.Table.1."},
		{"table path above instance", "Device.Object.Table.1.Parameter", 3, "Device.Object.Table."},
		{"partial path same depth", "Device.Object.Table.1.", 4, "Device.Object.Table.1."},
		{"partial path one up", "Device.Object.Table.1.", 3, "Device.Object.Table."},
		{"multiple levels", "Device.Object.Table.1.Parameter", 2, "Device.Object."},
		{"level zero", "Device.Object.Table.1.Parameter", 0, ""},
		{"level equals length", "Device.Object.Table.1.Parameter", 5, "Device.Object.Table.1.Parameter"},
		{"level beyond length", "Device.Object.Table.1.Parameter", 6, "Device.Object.Table.1.Parameter"},
		{"level far beyond length", "Device.Object.Table.1.Parameter", 1005, "Device.Object.Table.1.Parameter"},
	}

	for _, td := range tds {
		t.Run(td.desc, func(t *testing.T) {
			got := BuildPathFromParts(strings.Split(td.path, "."), td.numParts)
			if got != td.want {
				t.Errorf("BuildPathFromParts(%q, %d) = %q, want %q",
					td.path, td.numParts, got, td.want)
			}
		})
	}
}
