package contact

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"tickethub-cli/model"
	"tickethub-cli/store"
)

// Book keeps contact form submissions, most recent first.
type Book struct {
	mu   sync.Mutex
	repo store.Repository[model.ContactSubmission]
	log  logrus.FieldLogger
}

func NewBook(repo store.Repository[model.ContactSubmission], log logrus.FieldLogger) *Book {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Book{repo: repo, log: log}
}

func (b *Book) List() ([]model.ContactSubmission, error) {
	return b.repo.Load()
}

// Add stores submission at the front. Callers validate it first.
func (b *Book) Add(submission model.ContactSubmission) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, err := b.repo.Load()
	if err != nil {
		return errors.Wrap(err, "load submissions")
	}
	next := make([]model.ContactSubmission, 0, len(subs)+1)
	next = append(next, submission)
	next = append(next, subs...)
	if err := b.repo.Save(next); err != nil {
		return errors.Wrap(err, "save submissions")
	}
	b.log.WithField("count", len(next)).Info("contact submission saved")
	return nil
}

// DeleteAt removes the submission at index. It reports false, without
// writing, when index is out of range.
func (b *Book) DeleteAt(index int) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, err := b.repo.Load()
	if err != nil {
		return false, errors.Wrap(err, "load submissions")
	}
	if index < 0 || index >= len(subs) {
		return false, nil
	}
	next := append(subs[:index:index], subs[index+1:]...)
	if err := b.repo.Save(next); err != nil {
		return false, errors.Wrap(err, "save submissions")
	}
	b.log.WithFields(logrus.Fields{"index": index, "count": len(next)}).Info("contact submission deleted")
	return true, nil
}

func (b *Book) ClearAll() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.repo.Save(nil); err != nil {
		return errors.Wrap(err, "clear submissions")
	}
	b.log.Info("contact submissions cleared")
	return nil
}
