// Package dashboard holds the client-side logic of the carpark dashboard.
//
// A Controller owns the last state snapshot, the rendered view.Page and the
// transient form state of the open modals. Every handler validates its input,
// issues at most one API call and, on success, replaces the snapshot and
// re-renders. Failures are reported through the Banner and returned to the
// caller; none of them is fatal.
//
// Handlers may run concurrently. The controller lock is held only while page
// and form state are read or written, never across an API call, so the
// response that completes last determines what is shown.
package dashboard
