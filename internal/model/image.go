// Package model holds the image metadata records both stores persist.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// DateLayout is the wire format of the optional date columns.
const DateLayout = "2006-01-02"

// Image is a row of the relational images table, in column order.
//
// Optional scalar columns are pointers so unset values are omitted from
// JSON responses instead of being rendered as zero values. The label
// arrays are always present; an empty array is sent as [].
type Image struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Width          *int32   `json:"width,omitempty"`
	Height         *int32   `json:"height,omitempty"`
	URL            *string  `json:"url,omitempty"`
	URLResize      *string  `json:"url_resize,omitempty"`
	DateAdded      *Date    `json:"date_added,omitempty"`
	DateIdentified *Date    `json:"date_identified,omitempty"`
	AILabels       []string `json:"ai_labels"`
	AIText         []string `json:"ai_text"`
}

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) *Date {
	y, m, d := t.Date()
	return &Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	t, err := time.Parse(`"`+DateLayout+`"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// NewImage is the payload both stores accept on insert. Everything else
// (id, dimensions, resize url, dates) is assigned by the store.
type NewImage struct {
	Name     string   `json:"name" validate:"required"`
	URL      string   `json:"url" validate:"required,url"`
	AILabels []string `json:"ai_labels" validate:"omitempty,dive,required"`
	AIText   []string `json:"ai_text" validate:"omitempty,dive,required"`
}

// Document is a document-store image: every stored field keyed by name,
// with the internal _id already replaced by a hex "id".
type Document map[string]any

// MarshalJSON renders the document as relaxed MongoDB Extended JSON, so
// store-specific scalars (dates, ObjectIDs, decimals) keep a faithful,
// JSON-compatible form. HTML characters are left unescaped here; the
// response encoder must also disable escaping to keep them that way.
func (d Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	return bson.MarshalExtJSON(bson.M(d), false, false)
}

// DocumentID returns the hex id of the document, or "" when absent.
func (d Document) DocumentID() string {
	id, _ := d["id"].(string)
	return id
}
