/*
Package communitytest provides fakes and helpers for testing extensions and
applications.
*/
package communitytest
