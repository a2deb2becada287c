// Package rtc prepares the WebRTC settings clients need to open peer
// connections between each other. The server never terminates media.
package rtc

import (
	"github.com/dkeye/Meet/internal/config"
	"github.com/pion/stun/v3"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

func DefaultWebRTCConfig() webrtc.Configuration {
	return webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{
				URLs: []string{"stun:stun.l.google.com:19302"},
			},
		},
	}
}

// Configuration converts configured ICE servers, skipping URLs that are not
// valid stun/turn URIs. With nothing usable left the default STUN server is
// returned.
func Configuration(servers []config.ICEServer) webrtc.Configuration {
	out := make([]webrtc.ICEServer, 0, len(servers))
	for _, s := range servers {
		urls := make([]string, 0, len(s.URLs))
		for _, u := range s.URLs {
			if _, err := stun.ParseURI(u); err != nil {
				log.Warn().Err(err).Str("module", "rtc").Str("url", u).Msg("skipping ice url")
				continue
			}
			urls = append(urls, u)
		}
		if len(urls) == 0 {
			continue
		}
		srv := webrtc.ICEServer{URLs: urls}
		if s.Username != "" {
			srv.Username = s.Username
			srv.Credential = s.Credential
			srv.CredentialType = webrtc.ICECredentialTypePassword
		}
		out = append(out, srv)
	}
	if len(out) == 0 {
		return DefaultWebRTCConfig()
	}
	return webrtc.Configuration{ICEServers: out}
}
