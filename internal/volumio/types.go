package volumio

import "strings"

// Transport command names accepted by /commands/?cmd=.
const (
	CmdPlay         = "play"
	CmdPause        = "pause"
	CmdStop         = "stop"
	CmdPrev         = "prev"
	CmdNext         = "next"
	CmdVolume       = "volume"
	CmdPlayPlaylist = "playplaylist"
)

// Player status values that get special handling. The set is open; anything
// else the player reports is passed through untouched.
const (
	StatusPlay  = "play"
	StatusPause = "pause"
	StatusStop  = "stop"
)

// Service names used by the enqueue heuristic and toggle logic.
const (
	ServiceWebRadio = "webradio"
	ServiceMPD      = "mpd"

	TypeWebRadio = "webradio"
	TypeSong     = "song"
)

// PlayerState mirrors the payload returned by /getState.
type PlayerState struct {
	Status    string `json:"status"`
	Position  int    `json:"position"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Album     string `json:"album"`
	AlbumArt  string `json:"albumart"`
	URI       string `json:"uri"`
	TrackType string `json:"trackType"`
	Seek      int64  `json:"seek"`
	Duration  int    `json:"duration"`
	Volume    int    `json:"volume"`
	Mute      bool   `json:"mute"`
	Service   string `json:"service"`
}

// IsWebRadio reports whether the current source is a web radio stream.
func (s PlayerState) IsWebRadio() bool {
	return s.Service == ServiceWebRadio
}

// QueueResponse mirrors /getQueue.
type QueueResponse struct {
	Queue []QueueItem `json:"queue"`
}

// QueueItem describes a single entry of the player queue.
type QueueItem struct {
	URI       string `json:"uri"`
	Service   string `json:"service"`
	Name      string `json:"name"`
	Artist    string `json:"artist"`
	Album     string `json:"album"`
	Type      string `json:"type"`
	AlbumArt  string `json:"albumart"`
	Duration  int    `json:"duration"`
	TrackType string `json:"trackType"`
}

// BrowseResponse mirrors /browse. Both the root source listing and scoped
// listings share this envelope.
type BrowseResponse struct {
	Navigation *BrowseNavigation `json:"navigation"`
}

// BrowseNavigation holds the grouped lists of a browse response.
type BrowseNavigation struct {
	Prev  *BrowsePrev  `json:"prev,omitempty"`
	Lists []BrowseList `json:"lists"`
}

// BrowsePrev points at the parent node of a scoped listing.
type BrowsePrev struct {
	URI string `json:"uri"`
}

// BrowseList is a titled group of items. At the root level each list is a
// source and carries its own Name and URI instead of Items.
type BrowseList struct {
	Title      string       `json:"title"`
	Name       string       `json:"name"`
	URI        string       `json:"uri"`
	PluginName string       `json:"plugin_name"`
	PluginType string       `json:"plugin_type"`
	Items      []BrowseItem `json:"items"`
}

// BrowseItem is a single entry inside a BrowseList.
type BrowseItem struct {
	Service  string `json:"service"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	URI      string `json:"uri"`
	AlbumArt string `json:"albumart"`
}

// Lists returns the navigation lists, or nil when the response carries none.
func (r *BrowseResponse) Lists() []BrowseList {
	if r == nil || r.Navigation == nil {
		return nil
	}
	return r.Navigation.Lists
}

// EnqueueItem is the minimal record submitted to /replaceAndPlay.
type EnqueueItem struct {
	URI     string `json:"uri"`
	Service string `json:"service"`
	Type    string `json:"type"`
	Title   string `json:"title"`
}

// NewEnqueueItem builds an EnqueueItem, choosing service and type from the
// URI scheme: http(s) streams are web radio, everything else is a local song.
func NewEnqueueItem(uri, title string) EnqueueItem {
	item := EnqueueItem{URI: uri, Service: ServiceMPD, Type: TypeSong, Title: title}
	if strings.HasPrefix(uri, "http") {
		item.Service = ServiceWebRadio
		item.Type = TypeWebRadio
	}
	return item
}

// ReplaceAndPlayRequest is the JSON body of /replaceAndPlay.
type ReplaceAndPlayRequest struct {
	List  []EnqueueItem `json:"list"`
	Index int           `json:"index"`
}

// ReplaceAndPlayResponse is the reply of /replaceAndPlay.
type ReplaceAndPlayResponse struct {
	Response string `json:"response"`
}

// Succeeded reports whether the player accepted the request.
func (r ReplaceAndPlayResponse) Succeeded() bool {
	return r.Response == "success"
}

// ResolveAlbumArt turns the album art path reported by the player into an
// absolute URL. Absolute http(s) URLs pass through; relative paths are
// resolved against host. An empty path stays empty.
func ResolveAlbumArt(host, art string) string {
	art = strings.TrimSpace(art)
	if art == "" || strings.HasPrefix(art, "http") {
		return art
	}
	if !strings.HasPrefix(art, "/") {
		art = "/" + art
	}
	return "http://" + host + art
}
