package mdns

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
)

func TestCoapURLOf(t *testing.T) {
	tds := []struct {
		desc    string
		entry   *zeroconf.ServiceEntry
		want    string
		wantErr bool
	}{
		{
			desc: "host, port and path resolve to a coap URL",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "usp.controller-coap-johnb"},
				Port:          15683,
				Text:          []string{"path=usp"},
				AddrIPv4:      []net.IP{net.IPv4(192, 168, 1, 20)},
			},
			want: "coap://192.168.1.20:15683/usp",
		},
		{
			desc: "first IPv4 address wins",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "usp.controller-coap-johnb"},
				Port:          5683,
				Text:          []string{"name=lab", "path=notify/usp"},
				AddrIPv4:      []net.IP{net.IPv4(10, 0, 0, 7), net.IPv4(10, 0, 0, 8)},
			},
			want: "coap://10.0.0.7:5683/notify/usp",
		},
		{
			desc: "missing path TXT record",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "usp.controller-coap-johnb"},
				Port:          5683,
				Text:          []string{"name=lab"},
				AddrIPv4:      []net.IP{net.IPv4(10, 0, 0, 7)},
			},
			wantErr: true,
		},
		{
			desc: "no IPv4 address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "usp.controller-coap-johnb"},
				Port:          5683,
				Text:          []string{"path=usp"},
			},
			wantErr: true,
		},
	}

	for _, td := range tds {
		t.Run(td.desc, func(t *testing.T) {
			got, err := coapURLOf(td.entry)
			if td.wantErr {
				if err == nil {
					t.Fatalf("coapURLOf() = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("coapURLOf() failed: %v", err)
			}
			if got != td.want {
				t.Errorf("coapURLOf() = %q, want %q", got, td.want)
			}
		})
	}
}

func TestBrowserResolveAddr(t *testing.T) {
	b := &Browser{urls: make(map[string]string)}
	entries := make(chan *zeroconf.ServiceEntry, 2)
	entries <- &zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{Instance: "usp.controller-coap-johnb"},
		Port:          15683,
		Text:          []string{"path=usp"},
		AddrIPv4:      []net.IP{net.IPv4(192, 168, 1, 20)},
	}
	entries <- &zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{Instance: "usp.controller-malformed"},
		Port:          15683,
		AddrIPv4:      []net.IP{net.IPv4(192, 168, 1, 21)},
	}
	close(entries)
	b.consume(entries)

	url, ok := b.ResolveAddr("usp.controller-coap-johnb")
	if !ok {
		t.Fatal("ResolveAddr(usp.controller-coap-johnb) not found")
	}
	if want := "coap://192.168.1.20:15683/usp"; url != want {
		t.Errorf("ResolveAddr() = %q, want %q", url, want)
	}

	if url, ok := b.ResolveAddr("usp.controller-malformed"); ok {
		t.Errorf("ResolveAddr(usp.controller-malformed) = %q, want not found", url)
	}
	if url, ok := b.ResolveAddr("usp.controller-unknown"); ok {
		t.Errorf("ResolveAddr(usp.controller-unknown) = %q, want not found", url)
	}
}
