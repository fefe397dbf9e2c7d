/*
Package splittest provides test doubles for the splitledger interfaces:
transactions, messages, handlers and decorators whose behaviour is set
through their fields.
*/
package splittest
