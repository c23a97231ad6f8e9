package models

// Service is a single bookable line in the catalogue.
type Service struct {
	ID           string   `bson:"id" json:"id"`                                         // stable identifier, unique across the catalogue
	Name         string   `bson:"name" json:"name"`                                     // display name
	Description  string   `bson:"description,omitempty" json:"description,omitempty"`   // one-line card text
	Details      string   `bson:"details,omitempty" json:"details,omitempty"`           // longer text shown in the detail view
	Price        float64  `bson:"price" json:"price"`                                   // GBP, two decimal places
	Rating       float64  `bson:"rating,omitempty" json:"rating,omitempty"`             // average review score
	Reviews      int      `bson:"reviews,omitempty" json:"reviews,omitempty"`           // number of reviews
	Tag          string   `bson:"tag,omitempty" json:"tag,omitempty"`                   // e.g. "Popular"
	WhatToExpect []string `bson:"whatToExpect,omitempty" json:"whatToExpect,omitempty"` // bullet points for the detail view
}

// Item reduces a catalogue service to the fields that travel with a job.
func (s Service) Item() ServiceItem {
	return ServiceItem{ID: s.ID, Name: s.Name, Price: s.Price}
}

// Category groups services under one heading.
type Category struct {
	ID       string    `bson:"id" json:"id"`
	Name     string    `bson:"name" json:"name"`
	Summary  string    `bson:"summary,omitempty" json:"summary,omitempty"`
	Lead     string    `bson:"lead,omitempty" json:"lead,omitempty"` // short intro shown above the services list
	Services []Service `bson:"services" json:"services"`
}

// Catalog is the complete list of categories offered to customers.
type Catalog struct {
	Categories []Category `bson:"categories" json:"categories"`
}

// FindCategory returns the category with the given id.
func (c *Catalog) FindCategory(id string) (*Category, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i], true
		}
	}
	return nil, false
}

// FindService looks a service up across every category.
func (c *Catalog) FindService(id string) (*Service, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Categories {
		for j := range c.Categories[i].Services {
			if c.Categories[i].Services[j].ID == id {
				return &c.Categories[i].Services[j], true
			}
		}
	}
	return nil, false
}
