// Package cli provides the interactive carpark command-line client.
//
// It wires configuration, the local settings database, the API gateway and
// the dashboard controller to a REPL. Interactive terminals get line editing
// and history through readline; piped input is read line by line so scripts
// can drive the client.
//
// Every command maps to one dashboard operation. Notifications are printed as
// they are raised and the dashboard is printed again after each successful
// change. See App.Run and runREPL.
package cli
