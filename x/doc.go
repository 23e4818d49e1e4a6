/*
Package x contains the interfaces shared by the extensions of a community
application; every extension lives in its own subpackage.
*/
package x
