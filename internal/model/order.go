package model

// Invitee is the fixed description of who arrives at the event.  The
// service books the performer pair as a unit, so every order carries the
// same value.
const Invitee = "Father Frost and Snow Maiden"

// CommentsNone is the sentinel stored when the customer has no wishes.
const CommentsNone = "-"

// Order is a confirmed booking as it is persisted in the order store.
// Orders are immutable once written: they are appended to the store at
// confirmation time and never mutated or deleted.  A (city, visit date,
// visit time) triple is deliberately not unique — many orders may share a
// slot up to the city's capacity ceiling.
//
// Fields:
//  OrderID     – opaque unique identifier (UUID).
//  OrderedAt   – when the order was placed, "02.01.2006 15:04".
//  Invitee     – who is invited (always the performer pair).
//  City        – city of the visit; keyed against the capacity table.
//  VisitDate   – calendar date of the visit as entered by the customer.
//  VisitTime   – slot time "HH:MM".
//  Tier        – service tier (express/standard/extended).
//  DurationMin – nominal duration of the tier in minutes.
//  Price       – computed price in whole rubles.
//  Address     – free-text event address.
//  ChildCount  – number of children at the event.
//  ChildName   – name of the main child, used for personalisation.
//  Phone       – contact phone, loosely validated at intake.
//  Comments    – free-text wishes, "-" when none.
type Order struct {
	OrderID     string `json:"order_id"`
	OrderedAt   string `json:"ordered_at"`
	Invitee     string `json:"invitee"`
	City        string `json:"city"`
	VisitDate   string `json:"date"`
	VisitTime   string `json:"time"`
	Tier        Tier   `json:"program_type"`
	DurationMin int    `json:"duration_min"`
	Price       int    `json:"price"`
	Address     string `json:"address"`
	ChildCount  int    `json:"children_count"`
	ChildName   string `json:"child_name"`
	Phone       string `json:"phone"`
	Comments    string `json:"comments"`
}

// SlotKey returns the occupancy key for the order's slot.  The key is the
// exact concatenation of the stored date and time strings; there is no
// tolerance for formatting drift, by contract with the availability engine.
func (o Order) SlotKey() string {
	return o.VisitDate + " " + o.VisitTime
}
