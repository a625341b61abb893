package models

// UploadRequest carries raw image bytes from the API layer. Data is
// base64-encoded on the wire; multipart form decoding stays outside this
// service.
type UploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

type CandidateRequest struct {
	Seat          string `json:"seat"`
	Name          string `json:"name"`
	SerialNumber  string `json:"serialNumber"`
	HeaderMessage string `json:"headerMessage"`

	// Existing references, kept when no fresh upload is attached.
	SymbolUrl      string `json:"symbolUrl"`
	PartySymbolUrl string `json:"partySymbolUrl"`

	SymbolUpload      *UploadRequest `json:"symbolUpload"`
	PartySymbolUpload *UploadRequest `json:"partySymbolUpload"`
}

type CreatePollRequest struct {
	Title     string `json:"title"`
	SubTitle  string `json:"subTitle"`
	PartyName string `json:"partyName"`

	// VotingDate is the YYYY-MM-DD calendar input; it is rendered to the
	// display string once at create time.
	VotingDate string `json:"votingDate"`

	BlueInfoText     string `json:"blueInfoText"`
	YellowTitleText  string `json:"yellowTitleText"`
	YellowFooterText string `json:"yellowFooterText"`
	ContactNumber    string `json:"contactNumber"`
	CustomMessage    string `json:"customMessage"`
	ElectionType     string `json:"electionType"`

	MainSymbolUpload *UploadRequest     `json:"mainSymbolUpload"`
	Candidates       []CandidateRequest `json:"candidates"`
}

type UpdatePollRequest struct {
	Title     *string `json:"title"`
	SubTitle  *string `json:"subTitle"`
	PartyName *string `json:"partyName"`

	VotingDate *string `json:"votingDate"`

	BlueInfoText     *string `json:"blueInfoText"`
	YellowTitleText  *string `json:"yellowTitleText"`
	YellowFooterText *string `json:"yellowFooterText"`
	ContactNumber    *string `json:"contactNumber"`
	CustomMessage    *string `json:"customMessage"`
	ElectionType     *string `json:"electionType"`

	MainSymbolUpload *UploadRequest      `json:"mainSymbolUpload"`
	Candidates       *[]CandidateRequest `json:"candidates"`
}

type TogglePollImagesRequest struct {
	Current bool `json:"current"`
}
