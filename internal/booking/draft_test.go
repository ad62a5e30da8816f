package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestStoreUpdateMergesLastWriteWins(t *testing.T) {
	s := NewStore()

	s.Update(Patch{ClientName: strptr("Ana")})
	s.Update(Patch{ClientEmail: strptr("ana@example.com")})
	s.Update(Patch{ClientName: strptr("Ana López"), ClientPhone: strptr("1155554444")})

	d := s.Get()
	assert.Equal(t, "Ana López", d.ClientName)
	assert.Equal(t, "ana@example.com", d.ClientEmail)
	assert.Equal(t, "1155554444", d.ClientPhone)
}

func TestStoreUpdateLeavesUnnamedFieldsAlone(t *testing.T) {
	s := NewStore()
	branch := BranchSelection{ID: "b1", Name: "Centro", Address: "San Martín 100"}
	s.Update(Patch{Branch: &branch})
	s.Update(Patch{Barber: strptr("matias")})
	s.Update(Patch{Date: strptr("2025-06-02")})
	s.Update(Patch{Time: strptr("09:00")})

	s.Update(Patch{ClientName: strptr("Ana")})

	d := s.Get()
	assert.Equal(t, branch, d.Branch)
	assert.Equal(t, "matias", d.Barber)
	assert.Equal(t, "2025-06-02", d.Date)
	assert.Equal(t, "09:00", d.Time)
}

func TestStoreInvalidation(t *testing.T) {
	seed := func() *Store {
		s := NewStore()
		s.Update(Patch{Branch: &BranchSelection{ID: "b1", Name: "Centro"}})
		s.Update(Patch{Barber: strptr("matias")})
		s.Update(Patch{Date: strptr("2025-06-02")})
		s.Update(Patch{Time: strptr("09:00")})
		return s
	}

	t.Run("branch change clears barber date time", func(t *testing.T) {
		s := seed()
		s.Update(Patch{Branch: &BranchSelection{ID: "b2", Name: "Norte"}})
		d := s.Get()
		assert.Empty(t, d.Barber)
		assert.Empty(t, d.Date)
		assert.Empty(t, d.Time)
	})

	t.Run("barber change clears date time", func(t *testing.T) {
		s := seed()
		s.Update(Patch{Barber: strptr("joaquin")})
		d := s.Get()
		assert.Equal(t, "b1", d.Branch.ID)
		assert.Empty(t, d.Date)
		assert.Empty(t, d.Time)
	})

	t.Run("date change clears time", func(t *testing.T) {
		s := seed()
		s.Update(Patch{Date: strptr("2025-06-03")})
		d := s.Get()
		assert.Equal(t, "matias", d.Barber)
		assert.Empty(t, d.Time)
	})

	t.Run("branch change wins over fields set in same patch", func(t *testing.T) {
		s := seed()
		s.Update(Patch{
			Branch: &BranchSelection{ID: "b2", Name: "Norte"},
			Date:   strptr("2025-06-09"),
		})
		d := s.Get()
		assert.Equal(t, "b2", d.Branch.ID)
		assert.Empty(t, d.Date)
	})

	t.Run("reselecting same branch keeps downstream", func(t *testing.T) {
		s := seed()
		s.Update(Patch{Branch: &BranchSelection{ID: "b1", Name: "Centro"}})
		d := s.Get()
		assert.Equal(t, "matias", d.Barber)
		assert.Equal(t, "2025-06-02", d.Date)
		assert.Equal(t, "09:00", d.Time)
	})

	t.Run("client fields never cascade", func(t *testing.T) {
		s := seed()
		s.Update(Patch{ClientName: strptr("Ana")})
		d := s.Get()
		assert.Equal(t, "09:00", d.Time)
	})
}

func TestStoreSubscribers(t *testing.T) {
	s := NewStore()
	var seen []string
	s.Subscribe(func(d Draft) { seen = append(seen, d.ClientName) })

	s.Update(Patch{ClientName: strptr("Ana")})
	s.Update(Patch{ClientName: strptr("Ana")}) // identical, no notification
	s.Update(Patch{ClientName: strptr("Ana López")})

	assert.Equal(t, []string{"Ana", "Ana López"}, seen)
}

func TestStoreReset(t *testing.T) {
	s := NewStore()
	s.Update(Patch{Barber: strptr("matias")})
	s.Reset()
	assert.Equal(t, Draft{}, s.Get())
}
