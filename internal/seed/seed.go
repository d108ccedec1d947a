// Package seed holds the canonical catalog the app ships with. The merge in
// the catalog service unions these entries under remote records; nothing in
// the system ever mutates this list.
package seed

import "anubhav/internal/models"

// Experiences returns a fresh copy of the seed catalog in its canonical
// order. Callers get their own slice so in-place edits cannot leak back.
func Experiences() []models.Experience {
	out := make([]models.Experience, len(catalog))
	for i, e := range catalog {
		e.Slots = append([]models.Slot(nil), e.Slots...)
		e.Dates = append([]string(nil), e.Dates...)
		out[i] = e
	}
	return out
}

// ByID returns the seed entry with the given id, or nil.
func ByID(id string) *models.Experience {
	for _, e := range catalog {
		if e.ID == id {
			c := e
			c.Slots = append([]models.Slot(nil), e.Slots...)
			c.Dates = append([]string(nil), e.Dates...)
			return &c
		}
	}
	return nil
}

var catalog = []models.Experience{
	{
		ID:          "rage-room-smashdown",
		Title:       "Rage Room Smashdown",
		Category:    models.CategoryAdventure,
		ImageURL:    "https://images.anubhav.app/rage-room.jpg",
		Description: "Thirty minutes, a bat, and a room full of things that deserve it. Safety gear included.",
		Price:       799,
		Slots: []models.Slot{
			{Time: "4:00 PM", Capacity: 6},
			{Time: "6:00 PM", Capacity: 6},
			{Time: "8:00 PM", Capacity: 4},
		},
		Dates:     []string{"2026-09-05", "2026-09-06", "2026-09-12"},
		HostPhone: "9876543210",
	},
	{
		ID:          "standup-open-mic",
		Title:       "Standup Comedy Open Mic",
		Category:    models.CategoryComedy,
		ImageURL:    "https://images.anubhav.app/open-mic.jpg",
		Description: "Local comics test new material. Heckling tolerated, almost encouraged.",
		Price:       299,
		Slots: []models.Slot{
			{Time: "7:30 PM", Capacity: 40},
			{Time: "9:30 PM", Capacity: 40},
		},
		Dates:     []string{"2026-09-04", "2026-09-11", "2026-09-18"},
		HostPhone: "9812345670",
	},
	{
		ID:          "pottery-wheel-basics",
		Title:       "Pottery Wheel Basics",
		Category:    models.CategoryWorkshop,
		ImageURL:    "https://images.anubhav.app/pottery.jpg",
		Description: "Two hours at the wheel with a working potter. Take your bowl home once it's fired.",
		Price:       1200,
		Slots: []models.Slot{
			{Time: "11:00 AM", Capacity: 8},
			{Time: "3:00 PM", Capacity: 8},
		},
		Dates:     []string{"2026-09-06", "2026-09-13", "2026-09-20"},
		HostPhone: "9822001100",
	},
	{
		ID:          "sunrise-yoga-lakeside",
		Title:       "Sunrise Yoga by the Lake",
		Category:    models.CategoryWellness,
		ImageURL:    "https://images.anubhav.app/lake-yoga.jpg",
		Description: "Slow vinyasa on the east bank, mats provided, chai after.",
		Price:       350,
		Slots: []models.Slot{
			{Time: "6:00 AM", Capacity: 20},
		},
		Dates:     []string{"2026-09-05", "2026-09-06", "2026-09-07", "2026-09-12"},
		HostPhone: "9833221144",
	},
	{
		ID:          "indie-rooftop-gig",
		Title:       "Indie Rooftop Gig",
		Category:    models.CategoryMusic,
		ImageURL:    "https://images.anubhav.app/rooftop-gig.jpg",
		Description: "Three unsigned bands, one rooftop, bring a jacket.",
		Price:       650,
		Slots: []models.Slot{
			{Time: "8:00 PM", Capacity: 80},
		},
		Dates:     []string{"2026-09-12", "2026-09-26"},
		HostPhone: "9844556677",
	},
	{
		ID:          "street-food-crawl",
		Title:       "Old City Street Food Crawl",
		Category:    models.CategoryFood,
		ImageURL:    "https://images.anubhav.app/food-crawl.jpg",
		Description: "Six stalls, three hours, one guide who grew up eating at all of them.",
		Price:       900,
		Slots: []models.Slot{
			{Time: "5:30 PM", Capacity: 12},
			{Time: "7:30 PM", Capacity: 12},
		},
		Dates:     []string{"2026-09-05", "2026-09-19"},
		HostPhone: "9855667788",
	},
	{
		ID:          "drum-circle-beach",
		Title:       "Full Moon Drum Circle",
		Category:    models.CategoryMusic,
		ImageURL:    "https://images.anubhav.app/drum-circle.jpg",
		Description: "Djembes provided. No experience needed, just hands.",
		Price:       450,
		Slots: []models.Slot{
			{Time: "9:00 PM", Capacity: 30},
		},
		Dates:     []string{"2026-09-06", "2026-10-05"},
		HostPhone: "9866778899",
	},
	{
		ID:          "sound-bath-healing",
		Title:       "Sound Bath & Breathwork",
		Category:    models.CategoryWellness,
		ImageURL:    "https://images.anubhav.app/sound-bath.jpg",
		Description: "Ninety minutes of singing bowls and guided breathing in a candlelit studio.",
		Price:       550,
		Slots: []models.Slot{
			{Time: "7:00 PM", Capacity: 15},
		},
		Dates:     []string{"2026-09-07", "2026-09-14", "2026-09-21"},
		HostPhone: "9877889900",
	},
}
