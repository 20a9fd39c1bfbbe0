package config

import "errors"

func (c *StructuredConfig) validate() error {
	var errs []error

	if c.Remote.Address == "" && !c.PrintDefConfig {
		errs = append(errs, ErrNoRemoteAddress)
	}
	if c.Sync.IndexBatchSize <= 0 {
		errs = append(errs, ErrInvalidIndexBatchSize)
	}
	if c.Storage.IndexDSN == "" {
		errs = append(errs, ErrNoIndexDSN)
	}
	if c.Storage.MaildirPath == "" {
		errs = append(errs, ErrNoMaildirPath)
	}
	if c.Storage.StatusDir == "" {
		errs = append(errs, ErrNoStatusDir)
	}

	return errors.Join(errs...)
}
