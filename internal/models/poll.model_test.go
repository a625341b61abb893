package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoll_GroupCandidatesBySeat(t *testing.T) {
	poll := &Poll{
		Candidates: CandidateList{
			{Seat: "अ", Name: "पहिला"},
			{Seat: "ब", Name: "दुसरा"},
			{Seat: " अ ", Name: "तिसरा"},
		},
	}

	groups := poll.GroupCandidatesBySeat()

	require.Len(t, groups, 2)
	assert.Equal(t, "अ", groups[0].Seat)
	assert.Len(t, groups[0].Candidates, 2)
	assert.Equal(t, "ब", groups[1].Seat)
	assert.Len(t, groups[1].Candidates, 1)
}

func TestPoll_GroupCandidatesBySeat_Empty(t *testing.T) {
	poll := &Poll{}

	assert.Empty(t, poll.GroupCandidatesBySeat())
}

func TestPoll_ApplyDefaults(t *testing.T) {
	poll := &Poll{
		Title:         "निवडणूक",
		SubTitle:      "यादी",
		PartyName:     "जनता आघाडी",
		MainSymbolUrl: "/uploads/symbol.png",
		Candidates: CandidateList{
			{Name: "उमेदवार"},
		},
	}

	poll.ApplyDefaults()

	assert.Equal(t, "/uploads/symbol.png", poll.OgImage)
	assert.Contains(t, poll.YellowTitleText, `"जनता आघाडी"`)
	assert.NotEmpty(t, poll.BlueInfoText)
	assert.NotEmpty(t, poll.YellowFooterText)
	assert.Equal(t, DefaultElectionType, poll.ElectionType)

	candidate := poll.Candidates[0]
	assert.Equal(t, "जागा 1", candidate.Seat)
	assert.Equal(t, "1", candidate.SerialNumber)
	assert.Equal(t, "/uploads/symbol.png", candidate.SymbolUrl)
	assert.Equal(t, "/uploads/symbol.png", candidate.PartySymbolUrl)
	assert.Equal(t, DefaultBgColor, candidate.BgColor)
}

func TestPoll_ApplyDefaults_DoesNotOverwrite(t *testing.T) {
	poll := &Poll{
		PartyName:       "पक्ष",
		MainSymbolUrl:   "/uploads/main.png",
		OgImage:         "/uploads/og.png",
		YellowTitleText: "custom title",
		Candidates: CandidateList{
			{Name: "उमेदवार", Seat: "क", SerialNumber: "7", SymbolUrl: "/uploads/own.png", BgColor: "#eee"},
		},
	}

	poll.ApplyDefaults()

	assert.Equal(t, "/uploads/og.png", poll.OgImage)
	assert.Equal(t, "custom title", poll.YellowTitleText)
	assert.Equal(t, "क", poll.Candidates[0].Seat)
	assert.Equal(t, "7", poll.Candidates[0].SerialNumber)
	assert.Equal(t, "/uploads/own.png", poll.Candidates[0].SymbolUrl)
	assert.Equal(t, "#eee", poll.Candidates[0].BgColor)
}

func TestPoll_Validate(t *testing.T) {
	tests := []struct {
		name        string
		poll        Poll
		expectError bool
	}{
		{
			name: "complete poll",
			poll: Poll{
				Title:         "निवडणूक",
				SubTitle:      "यादी",
				PartyName:     "पक्ष",
				MainSymbolUrl: "/uploads/symbol.png",
			},
			expectError: false,
		},
		{
			name: "missing title",
			poll: Poll{
				SubTitle:      "यादी",
				PartyName:     "पक्ष",
				MainSymbolUrl: "/uploads/symbol.png",
			},
			expectError: true,
		},
		{
			name:        "missing everything",
			poll:        Poll{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.poll.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPoll_Apply_RetainsOmittedFields(t *testing.T) {
	poll := &Poll{
		Title:         "जुने शीर्षक",
		SubTitle:      "यादी",
		PartyName:     "पक्ष",
		MainSymbolUrl: "/uploads/symbol.png",
		ContactNumber: "9800000000",
	}

	newTitle := "नवीन शीर्षक"
	poll.Apply(PollUpdate{Title: &newTitle})

	assert.Equal(t, "नवीन शीर्षक", poll.Title)
	assert.Equal(t, "यादी", poll.SubTitle)
	assert.Equal(t, "9800000000", poll.ContactNumber)
}

func TestCandidateList_ValueAndScan(t *testing.T) {
	list := CandidateList{
		{Seat: "अ", Name: "उमेदवार", SerialNumber: "1", SymbolUrl: "/uploads/a.png"},
	}

	value, err := list.Value()
	require.NoError(t, err)

	var scanned CandidateList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)
}

func TestCandidateList_ScanNil(t *testing.T) {
	scanned := CandidateList{{Name: "stale"}}

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
}

func TestCandidateList_ValueNilIsEmptyArray(t *testing.T) {
	var list CandidateList

	value, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}
