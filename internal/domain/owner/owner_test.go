package owner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOwner(t *testing.T) {
	t.Run("creates owner with normalised contact", func(t *testing.T) {
		o, err := NewOwner("Asha", "Patel", " Asha.Patel@Example.com ", " 9876543210 ")
		require.NoError(t, err)
		assert.Equal(t, "asha.patel@example.com", o.Email)
		assert.Equal(t, "9876543210", o.Phone)
		assert.Equal(t, "Asha Patel", o.FullName())
		assert.True(t, o.IsActive)
	})

	t.Run("email is optional", func(t *testing.T) {
		o, err := NewOwner("Ravi", "", "", "9876500000")
		require.NoError(t, err)
		assert.Equal(t, "Ravi", o.FullName())
	})

	t.Run("rejects missing phone", func(t *testing.T) {
		_, err := NewOwner("Asha", "Patel", "", "  ")
		assert.Error(t, err)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewOwner("Asha", "Patel", "not-an-email", "9876543210")
		assert.Error(t, err)
	})
}

func TestOwnerUpdates(t *testing.T) {
	o, err := NewOwner("Asha", "Patel", "asha@example.com", "9876543210")
	require.NoError(t, err)

	require.NoError(t, o.UpdateContact("new@example.com", "9000000000"))
	assert.Equal(t, "new@example.com", o.Email)
	assert.Error(t, o.UpdateContact("new@example.com", ""))

	require.NoError(t, o.SetGSTIN("27aapfu0939f1zv"))
	assert.Equal(t, "27AAPFU0939F1ZV", o.GSTIN)
	assert.Error(t, o.SetGSTIN("too-short"))

	o.Deactivate()
	assert.False(t, o.IsActive)
}

func TestNewPet(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates pet", func(t *testing.T) {
		p, err := NewPet(ownerID, "Bruno", SpeciesDog, "Labrador")
		require.NoError(t, err)
		assert.Equal(t, ownerID, p.OwnerID)
		assert.True(t, p.IsActive)
	})

	t.Run("rejects invalid species", func(t *testing.T) {
		_, err := NewPet(ownerID, "Bruno", Species("hamster"), "")
		assert.Error(t, err)
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		_, err := NewPet(uuid.Nil, "Bruno", SpeciesDog, "")
		assert.Error(t, err)
	})
}

func TestPetAgeAndWeight(t *testing.T) {
	p, err := NewPet(uuid.New(), "Misty", SpeciesCat, "")
	require.NoError(t, err)

	assert.Equal(t, -1, p.AgeInMonths(time.Now()))

	dob := time.Now().AddDate(-1, 0, 0)
	p.DateOfBirth = &dob
	age := p.AgeInMonths(time.Now())
	assert.GreaterOrEqual(t, age, 11)
	assert.LessOrEqual(t, age, 13)

	require.NoError(t, p.UpdateWeight(decimal.NewFromFloat(4.2)))
	assert.Error(t, p.UpdateWeight(decimal.NewFromInt(-1)))
}
