/*
Package utils contains the decorators every transaction passes through before
reaching its handler: panic recovery, logging and savepoints.
*/
package utils
