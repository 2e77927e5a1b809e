package entity

// SeatStats is one domain's provisioned service counts from the domain statistics export.
type SeatStats struct {
	Customer        string `json:"customer"`
	Domain          string `json:"domain"`
	PBXUsers        int    `json:"pbx_users"`
	CallCenter      int    `json:"call_center"`
	CallRecording   int    `json:"call_recording"`
	SIPTrunks       int    `json:"sip_trunks"`
	MeetingRooms    int    `json:"meeting_rooms"`
	VMTranscription int    `json:"vm_transcription"`
	PhoneNumbers    int    `json:"phone_numbers"`
	TeamsConnectors int    `json:"teams_connectors"`
	VideoConnectors int    `json:"video_connectors"`
}
