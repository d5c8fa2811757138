package campaign

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wingmate/wingmate/internal/jsonfile"
	"github.com/wingmate/wingmate/internal/parser"
)

func write(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestReader(t *testing.T) (*Reader, string) {
	t.Helper()
	root := t.TempDir()
	return NewReader(root, jsonfile.New(jsonfile.Options{}), nil), root
}

func TestListCampaigns(t *testing.T) {
	r, _ := newTestReader(t)
	for _, name := range []string{"Zeta", "Alpha", "Jasta 11"} {
		require.NoError(t, os.MkdirAll(r.CampaignDir(name), 0755))
	}
	write(t, filepath.Join(r.CampaignsDir(), "stray.json"), `{}`)

	assert.Equal(t, []string{"Alpha", "Jasta 11", "Zeta"}, r.ListCampaigns())
}

func TestListCampaigns_MissingDir(t *testing.T) {
	r, _ := newTestReader(t)
	got := r.ListCampaigns()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDescriptor(t *testing.T) {
	r, _ := newTestReader(t)
	write(t, filepath.Join(r.CampaignDir("Jasta"), DescriptorFile), `{
		"referencePlayerSerialNumber": 101003,
		"referencePlayerSquadronName": "Jasta 11",
		"campaignDate": "19170401"
	}`)

	d, ok := r.Descriptor("Jasta")
	require.True(t, ok)
	assert.Equal(t, "Jasta", d.Name)
	assert.Equal(t, "101003", d.PlayerSerial)
	assert.Equal(t, "Jasta 11", d.SquadronName)
	assert.Equal(t, "19170401", d.ReferenceDate)
}

func TestDescriptor_Absent(t *testing.T) {
	r, _ := newTestReader(t)

	_, ok := r.Descriptor("Nope")
	assert.False(t, ok)
	assert.Equal(t, parser.Object{}, r.RawDescriptor("Nope"))
}

func TestDescriptor_MissingSquadronName(t *testing.T) {
	r, _ := newTestReader(t)
	write(t, filepath.Join(r.CampaignDir("C"), DescriptorFile), `{"referencePlayerSerialNumber": "7"}`)

	d, ok := r.Descriptor("C")
	require.True(t, ok)
	assert.Equal(t, "7", d.PlayerSerial)
	assert.Equal(t, "N/A", d.SquadronName)
}

func TestAces_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "bare array",
			content: `[{"name":"Voss"},{"name":"Udet"}]`,
			want:    []string{"Voss", "Udet"},
		},
		{
			name:    "aces key",
			content: `{"aces":[{"name":"Guynemer"}]}`,
			want:    []string{"Guynemer"},
		},
		{
			name:    "acesInCampaign map ordered by key",
			content: `{"acesInCampaign":{"2":{"name":"Fonck"},"1":{"name":"Nungesser"}}}`,
			want:    []string{"Nungesser", "Fonck"},
		},
		{
			name:    "unrecognized object",
			content: `{"pilots":[{"name":"X"}]}`,
			want:    []string{},
		},
		{
			name:    "scalar",
			content: `42`,
			want:    []string{},
		},
		{
			name:    "empty list",
			content: `[]`,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestReader(t)
			write(t, filepath.Join(r.CampaignDir("C"), AcesFile), tt.content)

			aces := r.Aces("C")
			names := []string{}
			for _, a := range aces {
				names = append(names, a.String("name"))
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestAces_Missing(t *testing.T) {
	r, _ := newTestReader(t)
	assert.Empty(t, r.Aces("C"))
}

func TestPersonnel(t *testing.T) {
	r, _ := newTestReader(t)
	write(t, filepath.Join(r.PersonnelDir("C"), "401011.json"), `{"squadronMemberCollection":{}}`)

	assert.True(t, r.Personnel("C", 401011).Has("squadronMemberCollection"))
	assert.Empty(t, r.Personnel("C", 1))
}

func TestPersonnelFiles(t *testing.T) {
	r, _ := newTestReader(t)

	_, ok := r.PersonnelFiles("C")
	assert.False(t, ok)

	b := write(t, filepath.Join(r.PersonnelDir("C"), "b.json"), `{}`)
	a := write(t, filepath.Join(r.PersonnelDir("C"), "a.json"), `{}`)
	write(t, filepath.Join(r.PersonnelDir("C"), "notes.txt"), `x`)

	files, ok := r.PersonnelFiles("C")
	require.True(t, ok)
	assert.Equal(t, []string{a, b}, files)
}

func TestCombatReports_NewestFirst(t *testing.T) {
	r, _ := newTestReader(t)
	dir := filepath.Join(r.CampaignDir("C"), CombatReportsDir, "101003")
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"old", "mid", "new"} {
		p := write(t, filepath.Join(dir, name+".json"), `{"id":"`+name+`"}`)
		mt := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(p, mt, mt))
	}
	write(t, filepath.Join(dir, "broken.json"), `[1,2,3]`)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "broken.json"), base, base))

	reports := r.CombatReports("C", "101003")

	ids := []string{}
	for _, rep := range reports {
		ids = append(ids, rep.String("id"))
	}
	assert.Equal(t, []string{"new", "mid", "old"}, ids)
}

func TestCombatReports_MissingSerialDir(t *testing.T) {
	r, _ := newTestReader(t)
	assert.Empty(t, r.CombatReports("C", "999"))
}

func TestNewestFirst_MissingFileSortsLast(t *testing.T) {
	dir := t.TempDir()
	a := write(t, filepath.Join(dir, "a.json"), `{}`)
	gone := filepath.Join(dir, "gone.json")

	assert.Equal(t, []string{a, gone}, NewestFirst([]string{gone, a}))
}

func TestNewestFirst_StableOnTies(t *testing.T) {
	dir := t.TempDir()
	mt := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var paths []string
	for _, n := range []string{"x", "y", "z"} {
		p := write(t, filepath.Join(dir, n), `{}`)
		require.NoError(t, os.Chtimes(p, mt, mt))
		paths = append(paths, p)
	}

	assert.Equal(t, paths, NewestFirst(paths))
}
