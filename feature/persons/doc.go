// Package persons is the identity registry referenced by face regions.
//
// The reconciliation engine calls Ensure before inserting faces and Get to
// resolve a face's person. After every reconciled directory the gallery
// calls NotifyIndexUpdated, which refreshes each person's face count and
// sample face. The HTTP handler lists persons, returns one and toggles the
// favourite flag.
package persons
