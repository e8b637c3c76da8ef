package model

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestAvailability(t *testing.T) {
	t.Run("Test I: set and get round-trip", func(t *testing.T) {
		g := NewWithT(t)

		// Arrange
		availability := NewAvailability(5, 8)

		// Act
		availability.Set(2, 3, true)
		availability.Set(2, 5, true)
		availability.Set(2, 3, false)

		// Assert
		g.Expect(availability.Get(2, 3)).To(BeFalse())
		g.Expect(availability.Get(2, 5)).To(BeTrue())
		g.Expect(availability.Count()).To(Equal(1))
	})

	t.Run("Test II: toggle flips a single slot", func(t *testing.T) {
		g := NewWithT(t)

		availability := NewAvailability(3, 4)
		availability.Toggle(1, 2)
		g.Expect(availability.Get(1, 2)).To(BeTrue())

		availability.Toggle(1, 2)
		g.Expect(availability.Get(1, 2)).To(BeFalse())
	})

	t.Run("Test III: day operations keep high bits clear", func(t *testing.T) {
		g := NewWithT(t)

		availability := NewAvailability(2, 5)
		availability.SetDay(0, true)
		availability.ToggleDay(1)

		g.Expect(availability.Word(0)).To(Equal(uint32(0b11111)))
		g.Expect(availability.Word(1)).To(Equal(uint32(0b11111)))

		availability.ToggleDay(1)
		g.Expect(availability.Word(1)).To(Equal(uint32(0)))
	})

	t.Run("Test IV: full-width day uses all 32 bits", func(t *testing.T) {
		g := NewWithT(t)

		availability := NewAvailability(1, 32)
		availability.SetDay(0, true)

		g.Expect(availability.Word(0)).To(Equal(^uint32(0)))
		g.Expect(availability.Count()).To(Equal(32))
	})

	t.Run("Test V: slots enumerate in day-period order", func(t *testing.T) {
		g := NewWithT(t)

		availability := NewAvailability(2, 3)
		availability.Set(1, 0, true)
		availability.Set(0, 2, true)
		availability.Set(0, 1, true)

		g.Expect(availability.Slots()).To(Equal([]Slot{
			{Day: 0, Period: 1},
			{Day: 0, Period: 2},
			{Day: 1, Period: 0},
		}))
	})

	t.Run("Test VI: clone is independent of the original", func(t *testing.T) {
		g := NewWithT(t)

		availability := NewFullAvailability(2, 4)
		clone := availability.Clone()
		clone.Set(0, 0, false)

		g.Expect(availability.Get(0, 0)).To(BeTrue())
		g.Expect(clone.Get(0, 0)).To(BeFalse())
	})

	t.Run("Test VII: out-of-range access panics", func(t *testing.T) {
		g := NewWithT(t)

		availability := NewAvailability(2, 4)

		g.Expect(func() { availability.Get(2, 0) }).To(Panic())
		g.Expect(func() { availability.Get(0, 4) }).To(Panic())
		g.Expect(func() { NewAvailability(0, 4) }).To(Panic())
		g.Expect(func() { NewAvailability(8, 4) }).To(Panic())
		g.Expect(func() { NewAvailability(5, 33) }).To(Panic())
	})
}
