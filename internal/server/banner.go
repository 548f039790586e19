package server

import (
	"fmt"
	"net"

	qrcode "github.com/skip2/go-qrcode"
)

// printBanner shows where the dev server is reachable, with a QR code for
// the LAN URL so the page is one phone-camera scan away.
func printBanner(host string, port int) {
	fmt.Printf("\n  folio dev server\n")
	fmt.Printf("  local: http://localhost:%d\n", port)

	lan := lanIP(host)
	if lan == "" {
		fmt.Println()
		return
	}
	url := fmt.Sprintf("http://%s:%d", lan, port)
	fmt.Printf("  network: %s\n\n", url)

	qr, err := qrcode.New(url, qrcode.Low)
	if err != nil {
		return
	}
	fmt.Print(qr.ToSmallString(false))
	fmt.Println()
}

// lanIP picks the interface address phones on the same network can reach.
// When the server is bound to a concrete address that wins; a wildcard
// bind falls back to the first private unicast address.
func lanIP(host string) string {
	if ip := net.ParseIP(host); ip != nil && !ip.IsUnspecified() && !ip.IsLoopback() {
		return host
	}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.To4() == nil {
			continue
		}
		if ipNet.IP.IsPrivate() {
			return ipNet.IP.String()
		}
	}
	return ""
}
