package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/schema"
)

// progressEvery is how many processed commits pass between progress logs.
const progressEvery = 20

// walk holds the transaction state of one processRepository call.
type walk struct {
	h    *Hammer
	repo *schema.Repository
	tx   contract.StoreTx

	started   time.Time
	lastFlush time.Time
	processed int
}

// processRepository computes and stores every new commit reachable from the
// repository head. On error the writes since the last flush are rolled back.
func (h *Hammer) processRepository(ctx context.Context, repo *schema.Repository) (err error) {
	log := logger().With("repository", repo.Path)
	log.Info("processing repository")

	if err := h.authors.bulkPass(ctx, repo.Path); err != nil {
		return err
	}
	ids, err := h.git.ListCommits(ctx, repo.Path)
	if err != nil {
		return fmt.Errorf("listing commits of %s: %w", repo.Path, err)
	}

	w := &walk{h: h, repo: repo, started: h.now()}
	w.lastFlush = w.started
	defer func() {
		if err != nil {
			w.abort(ctx)
		}
	}()
	if err := w.begin(ctx); err != nil {
		return err
	}

	for _, id := range ids {
		if _, ok := h.commits[id]; ok {
			continue
		}
		if err := w.processCommit(ctx, id); err != nil {
			return err
		}
		if err := w.maybeFlush(ctx); err != nil {
			return err
		}
	}

	// A head that moved back to an already processed commit still needs recording.
	if n := len(ids); n > 0 {
		last := ids[n-1]
		if _, ok := h.commits[last]; ok && repo.HeadCommitID != last {
			if err := w.tx.UpdateHead(ctx, repo.ID, last); err != nil {
				return err
			}
			repo.HeadCommitID = last
		}
	}

	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit store transaction: %w", err)
	}
	w.tx = nil
	log.Info("processed repository", "commits", w.processed, "elapsed", h.now().Sub(w.started))
	return nil
}

// processCommit computes and writes one commit. Commits authored before the
// repository start time are skipped.
func (w *walk) processCommit(ctx context.Context, id string) error {
	h := w.h
	info, err := h.git.GetCommit(ctx, w.repo.Path, id)
	if err != nil {
		return err
	}
	if w.repo.StartTime != nil && info.AuthorTime.Before(*w.repo.StartTime) {
		logger().Debug("skipping early commit", "hexsha", id, "time", info.AuthorTime)
		return nil
	}

	author, err := h.authors.resolveWithAlias(ctx, w.repo.Path, info.AuthorLine())
	if err != nil {
		return err
	}
	commit, err := h.newStatsBuilder(w.repo, info, author).build(ctx)
	if err != nil {
		return err
	}

	for _, a := range h.authors.drainDirty() {
		if err := w.tx.SaveAuthor(ctx, a); err != nil {
			return err
		}
	}
	if err := w.tx.SaveCommit(ctx, commit); err != nil {
		return err
	}
	h.commits[id] = commit

	if err := w.tx.UpdateHead(ctx, w.repo.ID, id); err != nil {
		return err
	}
	w.repo.HeadCommitID = id

	w.processed++
	if w.processed%progressEvery == 0 {
		logger().Info("progress", "repository", w.repo.Path, "commits", w.processed, "elapsed", h.now().Sub(w.started))
	}
	return nil
}

// begin opens a new transaction and writes the authors queued outside of one.
func (w *walk) begin(ctx context.Context) error {
	tx, err := w.h.store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin store transaction: %w", err)
	}
	w.tx = tx
	for _, a := range w.h.authors.drainDirty() {
		if err := tx.SaveAuthor(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// maybeFlush commits the transaction once the flush interval has elapsed.
func (w *walk) maybeFlush(ctx context.Context) error {
	if w.h.now().Sub(w.lastFlush) < w.h.flushInterval {
		return nil
	}
	start := w.h.now()
	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("failed to flush store transaction: %w", err)
	}
	w.tx = nil
	w.lastFlush = w.h.now()
	logger().Info("flushed", "repository", w.repo.Path, "commits", w.processed, "elapsed", w.lastFlush.Sub(start))
	return w.begin(ctx)
}

// abort rolls back the open transaction and reloads the session from the
// store, so that the commits, heads and authors of the unflushed tail are forgotten.
func (w *walk) abort(ctx context.Context) {
	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			contract.LogWarn("Failed to roll back store transaction", err)
		}
		w.tx = nil
	}
	if err := w.h.load(ctx); err != nil {
		contract.LogWarn("Failed to reload project after rollback", err)
		w.h.ready = false
	}
}
