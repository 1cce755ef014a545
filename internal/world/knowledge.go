package world

import "homesim/internal/knowledge"

// Knowledge snapshots the world as a knowledge document. Traversal order is
// part of the artifact contract: rooms with their fixtures, then movables,
// then the shared static objects, with the person closing the document.
func (w *World) Knowledge() knowledge.Document {
	var doc knowledge.Document
	for _, room := range w.Rooms {
		doc.Records = append(doc.Records, room.Records()...)
	}
	for _, m := range w.Items {
		doc.Records = append(doc.Records, knowledge.Record{
			ID:         m.Base().id,
			Attributes: m.Attributes(),
		})
	}
	for _, static := range StaticObjects() {
		doc.Records = append(doc.Records, knowledge.Record{ID: static})
	}
	doc.Records = append(doc.Records, w.Person.Record())
	return doc
}
