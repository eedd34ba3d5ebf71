/*
Package control implements the local IPC surface of the installation.

The inbound gate is a Unix socket carrying newline-delimited ASCII commands;
the exact line "read" starts a reading. The outbound result endpoint is a Unix
socket owned by the waiting collaborator; one connection is opened per reading
and receives "<primary>|<related>" with no terminator.
*/
package control
