/*

Package gconf implements storage of singleton records: a single, global,
in-database value kept under a fixed key, such as the split configuration.

Records are validated on write and only decoded on read. A missing record is
reported as errors.ErrNotFound so that callers can fall back to defaults.

*/
package gconf
