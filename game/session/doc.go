// Package session keeps live Leapfrog games in memory.
//
// Each session owns its own engine, created from a board layout, plus its
// creation and last access times. Sessions are identified by random
// 4-character hex IDs, looked up case-insensitively. Nothing is written to
// disk: a session lives until it is deleted, it expires, or the process
// exits.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	sessions := manager.List()
//
// The manager is safe for concurrent use. The engines it hands out are not;
// callers serialize access to a session themselves (see package service).
//
// CleanupExpiredSessions removes sessions idle for longer than a given
// duration; the server runs it periodically.
package session
