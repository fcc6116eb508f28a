package agentdb

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestToGenericPath(t *testing.T) {
	tds := []struct {
		path string
		want string
	}{
		{"Device.LocalAgent.Manufacturer", "Device.LocalAgent.Manufacturer"},
		{"Device.Controller.1.Enable", "Device.Controller.{i}.Enable"},
		{"Device.Controller.*.Enable", "Device.Controller.{i}.Enable"},
		{"Device.Services.HomeAutomation.1.Camera.12.Pic.100.URL",
			"Device.Services.HomeAutomation.{i}.Camera.{i}.Pic.{i}.URL"},
		{"Device.Services.HomeAutomation.1.Camera.1.Pic.", cameraPicTable},
		{"Device.Services.HomeAutomation.1.Camera.1.Pic.__NextInstNum__",
			"Device.Services.HomeAutomation.{i}.Camera.{i}.Pic.__NextInstNum__"},
	}

	for _, td := range tds {
		if got := toGenericPath(td.path); got != td.want {
			t.Errorf("toGenericPath(%q) = %q, want %q", td.path, got, td.want)
		}
	}
}

func TestFindParams(t *testing.T) {
	db := newTestDB(t)

	tds := []struct {
		desc    string
		path    string
		want    []string
		wantErr bool
	}{
		{
			desc: "static path",
			path: "Device.ControllerNumberOfEntries",
			want: []string{"Device.ControllerNumberOfEntries"},
		},
		{
			desc: "static path below an object",
			path: "Device.LocalAgent.SupportedProtocols",
			want: []string{"Device.LocalAgent.SupportedProtocols"},
		},
		{
			desc:    "unknown path",
			path:    "Device.NoSuchParameter",
			wantErr: true,
		},
		{
			desc: "instance number addressing",
			path: "Device.Controller.1.Enable",
			want: []string{"Device.Controller.1.Enable"},
		},
		{
			desc: "instance number addressing below a nested object",
			path: "Device.Controller.2.MTP.1.CoAP.Host",
			want: []string{"Device.Controller.2.MTP.1.CoAP.Host"},
		},
		{
			desc: "instance number addressing in a table",
			path: "Device.Services.HomeAutomation.1.Camera.1.Pic.10.URL",
			want: []string{"Device.Services.HomeAutomation.1.Camera.1.Pic.10.URL"},
		},
		{
			desc: "implemented path without a matching instance",
			path: "Device.Services.HomeAutomation.1.Camera.1.Pic.1.URL",
			want: nil,
		},
		{
			desc: "wildcard searching",
			path: "Device.Controller.*.Enable",
			want: []string{
				"Device.Controller.1.Enable",
				"Device.Controller.2.Enable",
			},
		},
		{
			desc: "wildcard searching below a nested table",
			path: "Device.Controller.*.MTP.1.Protocol",
			want: []string{
				"Device.Controller.1.MTP.1.Protocol",
				"Device.Controller.2.MTP.1.Protocol",
			},
		},
		{
			desc: "wildcard searching in a table",
			path: "Device.Services.HomeAutomation.1.Camera.1.Pic.*.URL",
			want: []string{
				"Device.Services.HomeAutomation.1.Camera.1.Pic.9.URL",
				"Device.Services.HomeAutomation.1.Camera.1.Pic.10.URL",
			},
		},
		{
			desc: "multiple wildcards",
			path: "Device.Services.HomeAutomation.1.Camera.*.Pic.*.URL",
			want: []string{
				"Device.Services.HomeAutomation.1.Camera.1.Pic.9.URL",
				"Device.Services.HomeAutomation.1.Camera.1.Pic.10.URL",
				"Device.Services.HomeAutomation.1.Camera.2.Pic.10.URL",
				"Device.Services.HomeAutomation.1.Camera.2.Pic.90.URL",
				"Device.Services.HomeAutomation.1.Camera.2.Pic.100.URL",
			},
		},
		{
			desc: "partial path excludes meta entries",
			path: "Device.Services.HomeAutomation.1.Camera.1.Pic.",
			want: []string{
				"Device.Services.HomeAutomation.1.Camera.1.Pic.9.URL",
				"Device.Services.HomeAutomation.1.Camera.1.Pic.10.URL",
			},
		},
	}

	for _, td := range tds {
		t.Run(td.desc, func(t *testing.T) {
			got, err := db.FindParams(td.path)
			if td.wantErr {
				if !IsNoSuchPath(err) {
					t.Fatalf("FindParams(%q) error = %v, want NoSuchPathError", td.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindParams(%q) failed: %v", td.path, err)
			}
			if diff := pretty.Compare(td.want, got); diff != "" {
				t.Errorf("FindParams(%q) diff (-want +got):\n%s", td.path, diff)
			}
		})
	}
}

func TestFindInstances(t *testing.T) {
	db := newTestDB(t)

	tds := []struct {
		desc    string
		path    string
		want    []string
		wantErr bool
	}{
		{
			desc:    "unknown object",
			path:    "Device.NoSuchObj.",
			wantErr: true,
		},
		{
			desc:    "full parameter path",
			path:    "Device.ControllerNumberOfEntries",
			wantErr: true,
		},
		{
			desc:    "object that is not a table",
			path:    "Device.LocalAgent.",
			wantErr: true,
		},
		{
			desc: "controller table",
			path: "Device.Controller.",
			want: []string{
				"Device.Controller.1.",
				"Device.Controller.2.",
			},
		},
		{
			desc: "subscription table",
			path: "Device.Subscription.",
			want: []string{
				"Device.Subscription.1.",
				"Device.Subscription.2.",
				"Device.Subscription.3.",
				"Device.Subscription.4.",
			},
		},
		{
			desc: "table below an instance",
			path: "Device.Controller.1.MTP.",
			want: []string{"Device.Controller.1.MTP.1."},
		},
		{
			desc: "instance number addressing excludes meta entries",
			path: "Device.Services.HomeAutomation.1.Camera.2.Pic.",
			want: []string{
				"Device.Services.HomeAutomation.1.Camera.2.Pic.10.",
				"Device.Services.HomeAutomation.1.Camera.2.Pic.90.",
				"Device.Services.HomeAutomation.1.Camera.2.Pic.100.",
			},
		},
		{
			desc: "implemented table without instances",
			path: "Device.Services.HomeAutomation.1.Camera.3.Pic.",
			want: nil,
		},
		{
			desc: "wildcard searching resolves concrete rows",
			path: "Device.Services.HomeAutomation.1.Camera.*.Pic.",
			want: []string{
				"Device.Services.HomeAutomation.1.Camera.1.Pic.9.",
				"Device.Services.HomeAutomation.1.Camera.1.Pic.10.",
				"Device.Services.HomeAutomation.1.Camera.2.Pic.10.",
				"Device.Services.HomeAutomation.1.Camera.2.Pic.90.",
				"Device.Services.HomeAutomation.1.Camera.2.Pic.100.",
			},
		},
	}

	for _, td := range tds {
		t.Run(td.desc, func(t *testing.T) {
			got, err := db.FindInstances(td.path)
			if td.wantErr {
				if !IsNoSuchPath(err) {
					t.Fatalf("FindInstances(%q) error = %v, want NoSuchPathError", td.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindInstances(%q) failed: %v", td.path, err)
			}
			if diff := pretty.Compare(td.want, got); diff != "" {
				t.Errorf("FindInstances(%q) diff (-want +got):\n%s", td.path, diff)
			}
		})
	}
}

func TestFindImplObjects(t *testing.T) {
	db := newTestDB(t)

	tds := []struct {
		desc      string
		path      string
		nextLevel bool
		want      []string
		wantErr   bool
	}{
		{
			desc:    "unknown object",
			path:    "Device.NoSuchObj.",
			wantErr: true,
		},
		{
			desc:      "unknown object next level",
			path:      "Device.NoSuchObj.",
			nextLevel: true,
			wantErr:   true,
		},
		{
			desc:    "full parameter path",
			path:    "Device.ControllerNumberOfEntries",
			wantErr: true,
		},
		{
			desc:      "full parameter path next level",
			path:      "Device.ControllerNumberOfEntries",
			nextLevel: true,
			wantErr:   true,
		},
		{
			desc: "generic table",
			path: "Device.Controller.{i}.",
			want: []string{
				"Device.Controller.{i}.MTP.{i}.",
				"Device.Controller.{i}.MTP.{i}.CoAP.",
				"Device.Controller.{i}.MTP.{i}.STOMP.",
			},
		},
		{
			desc: "table root",
			path: "Device.Subscription.",
			want: []string{"Device.Subscription.{i}."},
		},
		{
			desc: "object above a table",
			path: "Device.STOMP.",
			want: []string{"Device.STOMP.Connection.{i}."},
		},
		{
			desc: "subtree",
			path: "Device.Services.",
			want: []string{
				"Device.Services.HomeAutomation.{i}.",
				"Device.Services.HomeAutomation.{i}.Camera.{i}.",
				"Device.Services.HomeAutomation.{i}.Camera.{i}.Pic.{i}.",
			},
		},
		{
			desc:      "generic table next level",
			path:      "Device.Controller.{i}.",
			nextLevel: true,
			want:      []string{"Device.Controller.{i}.MTP."},
		},
		{
			desc:      "subtree next level",
			path:      "Device.Services.",
			nextLevel: true,
			want:      []string{"Device.Services.HomeAutomation."},
		},
		{
			desc: "instance number addressing",
			path: "Device.Controller.1.",
			want: []string{
				"Device.Controller.{i}.MTP.{i}.",
				"Device.Controller.{i}.MTP.{i}.CoAP.",
				"Device.Controller.{i}.MTP.{i}.STOMP.",
			},
		},
		{
			desc: "instance number addressing subtree",
			path: "Device.Services.HomeAutomation.1.",
			want: []string{
				"Device.Services.HomeAutomation.{i}.Camera.{i}.",
				"Device.Services.HomeAutomation.{i}.Camera.{i}.Pic.{i}.",
			},
		},
		{
			desc:      "instance number addressing next level",
			path:      "Device.Controller.2.",
			nextLevel: true,
			want:      []string{"Device.Controller.{i}.MTP."},
		},
		{
			desc:      "instance number addressing subtree next level",
			path:      "Device.Services.HomeAutomation.1.",
			nextLevel: true,
			want:      []string{"Device.Services.HomeAutomation.{i}.Camera."},
		},
		{
			desc: "missing instance still resolves against the schema",
			path: "Device.Controller.5.",
			want: []string{
				"Device.Controller.{i}.MTP.{i}.",
				"Device.Controller.{i}.MTP.{i}.CoAP.",
				"Device.Controller.{i}.MTP.{i}.STOMP.",
			},
		},
		{
			desc: "missing instance subtree",
			path: "Device.Services.HomeAutomation.2.",
			want: []string{
				"Device.Services.HomeAutomation.{i}.Camera.{i}.",
				"Device.Services.HomeAutomation.{i}.Camera.{i}.Pic.{i}.",
			},
		},
		{
			desc:      "missing instance subtree next level",
			path:      "Device.Services.HomeAutomation.2.",
			nextLevel: true,
			want:      []string{"Device.Services.HomeAutomation.{i}.Camera."},
		},
		{
			desc: "wildcard searching",
			path: "Device.Controller.*.",
			want: []string{
				"Device.Controller.{i}.MTP.{i}.",
				"Device.Controller.{i}.MTP.{i}.CoAP.",
				"Device.Controller.{i}.MTP.{i}.STOMP.",
			},
		},
		{
			desc: "wildcard searching subtree",
			path: "Device.Services.HomeAutomation.*.",
			want: []string{
				"Device.Services.HomeAutomation.{i}.Camera.{i}.",
				"Device.Services.HomeAutomation.{i}.Camera.{i}.Pic.{i}.",
			},
		},
		{
			desc:      "wildcard searching subtree next level",
			path:      "Device.Services.HomeAutomation.*.",
			nextLevel: true,
			want:      []string{"Device.Services.HomeAutomation.{i}.Camera."},
		},
		{
			desc: "object without child objects",
			path: "Device.Time.",
			want: nil,
		},
	}

	for _, td := range tds {
		t.Run(td.desc, func(t *testing.T) {
			got, err := db.FindImplObjects(td.path, td.nextLevel)
			if td.wantErr {
				if !IsNoSuchPath(err) {
					t.Fatalf("FindImplObjects(%q, %v) error = %v, want NoSuchPathError", td.path, td.nextLevel, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindImplObjects(%q, %v) failed: %v", td.path, td.nextLevel, err)
			}
			if diff := pretty.Compare(td.want, got); diff != "" {
				t.Errorf("FindImplObjects(%q, %v) diff (-want +got):\n%s", td.path, td.nextLevel, diff)
			}
		})
	}
}

func TestFindObjects(t *testing.T) {
	db := newTestDB(t)

	tds := []struct {
		desc    string
		path    string
		want    []string
		wantErr bool
	}{
		{
			desc: "object resolves to itself",
			path: "Device.LocalAgent.",
			want: []string{"Device.LocalAgent."},
		},
		{
			desc: "table root resolves to itself",
			path: "Device.Controller.",
			want: []string{"Device.Controller."},
		},
		{
			desc: "wildcard resolves to instances",
			path: "Device.Controller.*.",
			want: []string{
				"Device.Controller.1.",
				"Device.Controller.2.",
			},
		},
		{
			desc: "wildcard below a nested object",
			path: "Device.STOMP.Connection.*.",
			want: []string{"Device.STOMP.Connection.1."},
		},
		{
			desc: "nested wildcards resolve to rows",
			path: "Device.Services.HomeAutomation.1.Camera.*.Pic.*.",
			want: []string{
				"Device.Services.HomeAutomation.1.Camera.1.Pic.9.",
				"Device.Services.HomeAutomation.1.Camera.1.Pic.10.",
				"Device.Services.HomeAutomation.1.Camera.2.Pic.10.",
				"Device.Services.HomeAutomation.1.Camera.2.Pic.90.",
				"Device.Services.HomeAutomation.1.Camera.2.Pic.100.",
			},
		},
		{
			desc: "implemented instance without rows",
			path: "Device.Services.HomeAutomation.1.Camera.3.Pic.*.",
			want: nil,
		},
		{
			desc:    "unknown object",
			path:    "Device.NoSuchObj.",
			wantErr: true,
		},
		{
			desc:    "missing trailing dot",
			path:    "Device.LocalAgent",
			wantErr: true,
		},
	}

	for _, td := range tds {
		t.Run(td.desc, func(t *testing.T) {
			got, err := db.FindObjects(td.path)
			if td.wantErr {
				if !IsNoSuchPath(err) {
					t.Fatalf("FindObjects(%q) error = %v, want NoSuchPathError", td.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindObjects(%q) failed: %v", td.path, err)
			}
			if diff := pretty.Compare(td.want, got); diff != "" {
				t.Errorf("FindObjects(%q) diff (-want +got):\n%s", td.path, diff)
			}
		})
	}
}

func TestIsParamWritable(t *testing.T) {
	db := newTestDB(t)

	tds := []struct {
		desc    string
		path    string
		want    bool
		wantErr bool
	}{
		{desc: "writable static param", path: "Device.LocalAgent.PeriodicInterval", want: true},
		{desc: "read only static param", path: "Device.LocalAgent.Manufacturer", want: false},
		{desc: "writable instance param", path: "Device.Controller.1.Enable", want: true},
		{desc: "read only table param", path: "Device.Services.HomeAutomation.1.Camera.2.Pic.10.URL", want: false},
		{desc: "unknown param", path: "Device.NoSuchParam", wantErr: true},
		{desc: "meta entry", path: "Device.Services.HomeAutomation.1.Camera.1.Pic.__NextInstNum__", wantErr: true},
	}

	for _, td := range tds {
		t.Run(td.desc, func(t *testing.T) {
			got, err := db.IsParamWritable(td.path)
			if td.wantErr {
				if !IsNoSuchPath(err) {
					t.Fatalf("IsParamWritable(%q) error = %v, want NoSuchPathError", td.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("IsParamWritable(%q) failed: %v", td.path, err)
			}
			if got != td.want {
				t.Errorf("IsParamWritable(%q) = %v, want %v", td.path, got, td.want)
			}
		})
	}
}
