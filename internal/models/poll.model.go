package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBgColor      = "#fff"
	DefaultElectionType = "nagar-palika"

	defaultBlueInfoText     = "डेमो मतदानासाठी खालील यादीतील निर्णय घेतला आहे कृपया दाबा"
	defaultYellowFooterText = "यांना त्यांच्या नाव व चिन्हासमोरील बटन दाबून प्रचंड मताने विजयी करा!"
)

type Candidate struct {
	Seat           string `json:"seat"`
	Name           string `json:"name"`
	SerialNumber   string `json:"serialNumber"`
	SymbolUrl      string `json:"symbolUrl"`
	PartySymbolUrl string `json:"partySymbolUrl"`
	HeaderMessage  string `json:"headerMessage,omitempty"`
	BgColor        string `json:"bgColor,omitempty"`
	Votes          int    `json:"votes"`
}

// CandidateList is stored as one JSON document column in the durable store
// and as plain JSON everywhere else.
type CandidateList []Candidate

func (c CandidateList) Value() (driver.Value, error) {
	if c == nil {
		c = CandidateList{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (c *CandidateList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported candidate list column type %T", value)
	}
}

// Poll is the logical record shared by all tiers. DocID is the durable
// store's internal identity; PollID is the external key used in URLs and as
// the cross-tier join key, immutable once created. CreatedAt stays zero
// until the record reaches the durable store.
type Poll struct {
	DocID  uint   `gorm:"column:doc_id;primaryKey;autoIncrement" json:"-"`
	PollID string `gorm:"column:poll_id;type:varchar(16);uniqueIndex:idx_polls_poll_id;not null" json:"id"`

	Title         string `gorm:"type:varchar(255);not null" json:"title"`
	SubTitle      string `gorm:"type:varchar(255);not null" json:"subTitle"`
	PartyName     string `gorm:"type:varchar(255);not null" json:"partyName"`
	MainSymbolUrl string `gorm:"type:text"                  json:"mainSymbolUrl"`
	OgImage       string `gorm:"type:text"                  json:"ogImage,omitempty"`
	VotingDate    string `gorm:"type:varchar(255)"          json:"votingDate,omitempty"`

	BlueInfoText     string `gorm:"type:text" json:"blueInfoText,omitempty"`
	YellowTitleText  string `gorm:"type:text" json:"yellowTitleText,omitempty"`
	YellowFooterText string `gorm:"type:text" json:"yellowFooterText,omitempty"`

	ShowCandidateImages bool   `gorm:"default:true"              json:"showCandidateImages"`
	ContactNumber       string `gorm:"type:varchar(64)"          json:"contactNumber,omitempty"`
	CustomMessage       string `gorm:"type:text"                 json:"customMessage,omitempty"`
	ElectionType        string `gorm:"type:varchar(32)"          json:"electionType,omitempty"`

	Candidates CandidateList `gorm:"type:text" json:"candidates"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Poll) TableName() string {
	return "polls"
}

// ApplyDefaults fills the derived display fields the way the create form
// does: og image mirrors the main symbol, the yellow title embeds the party
// name, candidate assets inherit the poll's main symbol.
func (p *Poll) ApplyDefaults() {
	if p.OgImage == "" {
		p.OgImage = p.MainSymbolUrl
	}
	if p.BlueInfoText == "" {
		p.BlueInfoText = defaultBlueInfoText
	}
	if p.YellowTitleText == "" {
		p.YellowTitleText = fmt.Sprintf(`मतदानाच्या दिवशी सुद्धा "%s" पक्षाचे लोकप्रिय उमेदवार`, p.PartyName)
	}
	if p.YellowFooterText == "" {
		p.YellowFooterText = defaultYellowFooterText
	}
	if p.ElectionType == "" {
		p.ElectionType = DefaultElectionType
	}

	for i := range p.Candidates {
		candidate := &p.Candidates[i]
		if candidate.Seat == "" {
			candidate.Seat = fmt.Sprintf("जागा %d", i+1)
		}
		if candidate.SerialNumber == "" {
			candidate.SerialNumber = strconv.Itoa(i + 1)
		}
		if candidate.SymbolUrl == "" {
			candidate.SymbolUrl = p.MainSymbolUrl
		}
		if candidate.PartySymbolUrl == "" {
			candidate.PartySymbolUrl = p.MainSymbolUrl
		}
		if candidate.BgColor == "" {
			candidate.BgColor = DefaultBgColor
		}
	}
}

// Validate enforces the write-time invariant: a poll must carry everything
// needed to render. Reads stay permissive.
func (p *Poll) Validate() error {
	var missing []string
	if p.Title == "" {
		missing = append(missing, "title")
	}
	if p.SubTitle == "" {
		missing = append(missing, "subTitle")
	}
	if p.PartyName == "" {
		missing = append(missing, "partyName")
	}
	if p.MainSymbolUrl == "" {
		missing = append(missing, "mainSymbolUrl")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

type SeatGroup struct {
	Seat       string      `json:"seat"`
	Candidates []Candidate `json:"candidates"`
}

// GroupCandidatesBySeat groups candidates by trimmed seat value, preserving
// the order of first appearance. An empty candidate list yields zero groups.
func (p *Poll) GroupCandidatesBySeat() []SeatGroup {
	var groups []SeatGroup
	index := make(map[string]int)

	for _, candidate := range p.Candidates {
		seat := strings.TrimSpace(candidate.Seat)
		i, ok := index[seat]
		if !ok {
			index[seat] = len(groups)
			groups = append(groups, SeatGroup{Seat: seat})
			i = index[seat]
		}
		groups[i].Candidates = append(groups[i].Candidates, candidate)
	}

	return groups
}

// PollUpdate is a partial change-set. Nil fields keep their prior value;
// omission never nulls anything out.
type PollUpdate struct {
	Title               *string        `json:"title"`
	SubTitle            *string        `json:"subTitle"`
	PartyName           *string        `json:"partyName"`
	MainSymbolUrl       *string        `json:"mainSymbolUrl"`
	OgImage             *string        `json:"ogImage"`
	VotingDate          *string        `json:"votingDate"`
	BlueInfoText        *string        `json:"blueInfoText"`
	YellowTitleText     *string        `json:"yellowTitleText"`
	YellowFooterText    *string        `json:"yellowFooterText"`
	ShowCandidateImages *bool          `json:"showCandidateImages"`
	ContactNumber       *string        `json:"contactNumber"`
	CustomMessage       *string        `json:"customMessage"`
	ElectionType        *string        `json:"electionType"`
	Candidates          *CandidateList `json:"candidates"`
}

// Apply overlays the change-set onto the poll.
func (p *Poll) Apply(update PollUpdate) {
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.SubTitle != nil {
		p.SubTitle = *update.SubTitle
	}
	if update.PartyName != nil {
		p.PartyName = *update.PartyName
	}
	if update.MainSymbolUrl != nil {
		p.MainSymbolUrl = *update.MainSymbolUrl
	}
	if update.OgImage != nil {
		p.OgImage = *update.OgImage
	}
	if update.VotingDate != nil {
		p.VotingDate = *update.VotingDate
	}
	if update.BlueInfoText != nil {
		p.BlueInfoText = *update.BlueInfoText
	}
	if update.YellowTitleText != nil {
		p.YellowTitleText = *update.YellowTitleText
	}
	if update.YellowFooterText != nil {
		p.YellowFooterText = *update.YellowFooterText
	}
	if update.ShowCandidateImages != nil {
		p.ShowCandidateImages = *update.ShowCandidateImages
	}
	if update.ContactNumber != nil {
		p.ContactNumber = *update.ContactNumber
	}
	if update.CustomMessage != nil {
		p.CustomMessage = *update.CustomMessage
	}
	if update.ElectionType != nil {
		p.ElectionType = *update.ElectionType
	}
	if update.Candidates != nil {
		p.Candidates = *update.Candidates
	}
}
