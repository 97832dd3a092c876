package lastfm

import "encoding/xml"

type (
	LastFM struct {
		XMLName xml.Name `xml:"lfm"`
		Status  string   `xml:"status,attr"`
		Token   string   `xml:"token"`
		Session Session  `xml:"session"`
		Error   Error    `xml:"error"`
	}

	Session struct {
		Name       string `xml:"name"`
		Key        string `xml:"key"`
		Subscriber uint   `xml:"subscriber"`
	}

	Error struct {
		Code  uint   `xml:"code,attr"`
		Value string `xml:",chardata"`
	}
)
